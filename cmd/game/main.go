package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/absorb/internal/config"
	"github.com/tomz197/absorb/internal/loop/client"
	"github.com/tomz197/absorb/internal/sound"
	"golang.org/x/term"
)

func main() {
	logger := config.NewLogger("game")
	if err := config.Load(); err != nil {
		logger.Warn("failed to load .env", "err", err)
	}

	variant, err := config.Variant()
	if err != nil {
		logger.Warn("using default variant", "err", err)
	}

	// Session logs go to a file: stderr shares the game's terminal.
	sessionLog := config.NewLoggerTo(io.Discard, "game")
	if path := config.GetEnv("ABSORB_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Fatal("failed to open log file", "path", path, "err", err)
		}
		defer f.Close()
		sessionLog = config.NewLoggerTo(f, "game")
	}

	sm := sound.NewManager(1)
	if config.GetEnvBool("ABSORB_SOUND", true) {
		if err := sm.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio initialization failed", "err", err)
		}
		defer sm.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Variant:  variant,
		Logger:   sessionLog,
		OnEvent:  sm.HandleEvent,
	})
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
