package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/absorb/internal/config"
	"github.com/tomz197/absorb/internal/desktop"
	"github.com/tomz197/absorb/internal/loop"
	gameconfig "github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/object"
	"github.com/tomz197/absorb/internal/sound"
)

func main() {
	logger := config.NewLogger("desktop")
	if err := config.Load(); err != nil {
		logger.Warn("failed to load .env", "err", err)
	}

	variant, err := config.Variant()
	if err != nil {
		logger.Warn("using default variant", "err", err)
	}

	sm := sound.NewManager(1)
	if config.GetEnvBool("ABSORB_SOUND", true) {
		if err := sm.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio initialization failed", "err", err)
		}
		defer sm.Cleanup()
	}

	screen := object.NewScreen(gameconfig.CanvasWidth, gameconfig.CanvasHeight)
	game := desktop.NewGame(loop.NewGame(screen, variant, nil), desktop.Options{
		Events: sm,
		Logger: logger,
		Debug:  config.GetEnvBool("ABSORB_DEBUG", false),
	})

	ebiten.SetWindowTitle("absorb")
	ebiten.SetWindowSize(gameconfig.CanvasWidth, gameconfig.CanvasHeight)
	ebiten.SetTPS(variant.TargetFPS)

	logger.Info("starting", "variant", variant.Name)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
