package object

import (
	"math/rand"

	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/loop/config"
)

// SpawnPolicy selects how a new entity is placed.
type SpawnPolicy int

const (
	SpawnOnScreen      SpawnPolicy = iota // Anywhere inside the canvas
	SpawnOffScreenEdge                    // Just past the left or right edge
	SpawnPlayer                           // Canvas center, at rest
)

func (p SpawnPolicy) String() string {
	switch p {
	case SpawnOnScreen:
		return "on-screen"
	case SpawnOffScreenEdge:
		return "off-screen-edge"
	case SpawnPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Random returns an integer-valued float in [lo, hi).
// Returns lo when the range is empty.
func Random(rng *rand.Rand, lo, hi int) float64 {
	if hi <= lo {
		return float64(lo)
	}
	return float64(rng.Intn(hi-lo) + lo)
}

// randomVelocity picks one axis of velocity: a coin flip between
// [-MaxSpeed, -MinSpeed) and [MinSpeed, MaxSpeed).
func randomVelocity(rng *rand.Rand) float64 {
	if Random(rng, 0, 100) >= 50 {
		return Random(rng, -config.MaxSpeed, -config.MinSpeed)
	}
	return Random(rng, config.MinSpeed, config.MaxSpeed)
}

// Spawn creates an entity according to policy.
func Spawn(rng *rand.Rand, screen Screen, policy SpawnPolicy) Entity {
	switch policy {
	case SpawnOffScreenEdge:
		return NewOffScreen(rng, screen)
	case SpawnPlayer:
		return NewPlayer(screen)
	default:
		return NewOnScreen(rng, screen)
	}
}

// NewOnScreen creates a wanderer at a random position inside the canvas.
func NewOnScreen(rng *rand.Rand, screen Screen) Entity {
	return Entity{
		X:     Random(rng, 0, screen.Width),
		Y:     Random(rng, 0, screen.Height),
		R:     Random(rng, config.MinRadius, config.MaxRadius),
		VX:    randomVelocity(rng),
		VY:    randomVelocity(rng),
		Color: draw.ColorWhite,
		Kind:  KindWanderer,
	}
}

// NewOffScreen creates a wanderer in a band just beyond the left or right
// edge. Its vertical position may also sit slightly above or below the canvas.
func NewOffScreen(rng *rand.Rand, screen Screen) Entity {
	var x float64
	if Random(rng, 0, 100) >= 50 {
		x = Random(rng, -config.EdgeFar, -config.EdgeNear)
	} else {
		x = Random(rng, screen.Width+config.EdgeNear, screen.Width+config.EdgeFar)
	}
	return Entity{
		X:     x,
		Y:     Random(rng, -config.EdgeVertical, screen.Height+config.EdgeVertical),
		R:     Random(rng, config.MinRadius, config.MaxRadius),
		VX:    randomVelocity(rng),
		VY:    randomVelocity(rng),
		Color: draw.ColorWhite,
		Kind:  KindWanderer,
	}
}

// NewPlayer creates the player circle at the canvas center.
func NewPlayer(screen Screen) Entity {
	return Entity{
		X:     float64(screen.CenterX),
		Y:     float64(screen.CenterY),
		R:     config.InitialPlayerRadius,
		Color: draw.ColorBlue,
		Kind:  KindPlayer,
	}
}
