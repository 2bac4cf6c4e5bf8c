// Package object defines the game's circular entities, the policies that
// spawn them and the fixed-capacity pool that holds the wanderers.
package object

import (
	"github.com/tomz197/absorb/internal/draw"
)

// Kind distinguishes the two entity variants.
type Kind int

const (
	KindWanderer Kind = iota // Moves at constant velocity
	KindPlayer               // Follows the pointer, grows by absorbing
)

func (k Kind) String() string {
	switch k {
	case KindWanderer:
		return "wanderer"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Screen represents the logical canvas dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen builds a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Entity is a circle with a position, radius, velocity and display color.
type Entity struct {
	X, Y   float64    // Center
	R      float64    // Radius, never negative
	VX, VY float64    // Velocity in units per step
	Color  draw.Color // Display attribute only
	Kind   Kind
}

// Update advances the entity one step along its velocity.
func (e *Entity) Update() {
	e.X += e.VX
	e.Y += e.VY
}

// Position returns the entity center.
func (e *Entity) Position() (x, y float64) {
	return e.X, e.Y
}
