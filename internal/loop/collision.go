package loop

import (
	"github.com/tomz197/absorb/internal/object"
	"github.com/tomz197/absorb/internal/physics"
)

// resolveCollisions checks every wanderer against the player in pool order.
// Smaller wanderers are absorbed and grow the player immediately, so later
// checks in the same step see the grown radius. Touching an equal or larger
// wanderer ends the game; the remaining wanderers are left untouched and the
// whole world is reset. Returns true if the game was lost.
func (g *Game) resolveCollisions() bool {
	lost := false
	g.pool.Retain(func(e *object.Entity) bool {
		if lost {
			return true
		}
		if !physics.CirclesOverlap(g.player.X, g.player.Y, g.player.R, e.X, e.Y, e.R) {
			return true
		}
		if g.player.R > e.R {
			g.absorb()
			return false
		}
		lost = true
		return true
	})

	if lost {
		g.gameOver()
	}
	return lost
}

// absorb grows the player by the variant's increment.
func (g *Game) absorb() {
	g.player.R += g.variant.Increment
	g.stats.Absorbed++
	if g.player.R > g.stats.BestRadius {
		g.stats.BestRadius = g.player.R
	}
	g.emit(EventAbsorbed)
}

// gameOver stops the game and rebuilds the world.
func (g *Game) gameOver() {
	g.emit(EventGameOver)
	g.state = GameStateStopped
	g.accumulator = 0
	g.Reset()
}
