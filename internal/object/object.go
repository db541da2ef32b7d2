// Package object holds the game entities. Each entity owns its own kinematics
// and lifecycle predicate; entities never reference each other.
package object

import (
	"math"
	"time"

	"github.com/tomz197/starfall/internal/physics"
)

// Bounds is the playfield size in logical units.
type Bounds struct {
	Width  float64
	Height float64
}

// Random is the subset of *rand.Rand the entities draw from.
// Injected so simulations are reproducible.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// randomRange returns a uniform value in [lo, hi).
func randomRange(rng Random, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randomDuration returns a uniform duration in [lo, hi).
func randomDuration(rng Random, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rng.Float64()*float64(hi-lo))
}

// ceilScaled multiplies base by m and rounds up, ignoring float noise below 1e-9.
func ceilScaled(base int, m float64) int {
	return int(math.Ceil(float64(base)*m - 1e-9))
}

// Finite reports whether a position can take part in collision and rendering.
func Finite(x, y float64) bool {
	return physics.Finite(x, y)
}

// ShouldRenderBlink returns true if an entity with remaining protection time
// should be rendered this frame. Returns true always if remaining <= 0.
func ShouldRenderBlink(remaining time.Duration, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	phase := int(remaining.Seconds() * frequency)
	return phase%2 != 0
}
