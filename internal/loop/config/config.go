// Package config centralizes all tunable game parameters.
package config

import (
	"strings"
	"time"
)

// Logical canvas size. Terminal rendering scales this to fit the terminal;
// the desktop window uses it 1:1.
const (
	CanvasWidth  = 800
	CanvasHeight = 600
)

// Pool
const (
	PoolSize     = 50  // Live wanderers maintained every step
	CullMargin   = 200 // Wanderers fully beyond the canvas plus this margin are removed
	MinRadius    = 5   // Inclusive
	MaxRadius    = 50  // Exclusive
	MinSpeed     = 1   // Inclusive, per axis per step
	MaxSpeed     = 4   // Exclusive, per axis per step
	EdgeNear     = 50  // Off-screen spawn band starts this far past the edge
	EdgeFar      = 100 // ...and ends here
	EdgeVertical = 100 // Off-screen spawns may appear this far above/below the canvas
)

// Player
const (
	InitialPlayerRadius = 10
)

// Timing
const (
	MaxFrameDelta = 250 * time.Millisecond // Longer host stalls are clamped
)

// Terminal client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal render area is clamped to this size and centered.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 75
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5                // Notice shown before a session is closed
	ShutdownGracePeriod    = 15 * time.Second // Server waits this long for sessions to end
)

// Variant captures the per-variant constants the game ships with.
type Variant struct {
	Name             string
	Increment        float64 // Radius gained per absorbed wanderer
	HalfRadiusOffset bool    // Player sits at pointer + r/2 instead of on the pointer
	TargetFPS        int     // Simulation steps per second
}

// FrameInterval returns the fixed simulation timestep.
func (v Variant) FrameInterval() time.Duration {
	if v.TargetFPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(v.TargetFPS)
}

// Shipped variants.
var (
	VariantClassic = Variant{
		Name:             "classic",
		Increment:        2,
		HalfRadiusOffset: true,
		TargetFPS:        60,
	}
	VariantSmooth = Variant{
		Name:             "smooth",
		Increment:        1,
		HalfRadiusOffset: true,
		TargetFPS:        144,
	}
	VariantCentered = Variant{
		Name:             "centered",
		Increment:        2,
		HalfRadiusOffset: false,
		TargetFPS:        60,
	}
)

// Variants lists every shipped variant, default first.
var Variants = []Variant{VariantClassic, VariantSmooth, VariantCentered}

// VariantByName returns the variant with the given name (case-insensitive).
// Unknown names report false.
func VariantByName(name string) (Variant, bool) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, strings.TrimSpace(name)) {
			return v, true
		}
	}
	return Variant{}, false
}
