// Package difficulty provides the progressive difficulty curve, the tracker
// that maps score to a milestone, and the selectable difficulty presets.
package difficulty

import (
	"fmt"
	"math"
	"sync"

	"github.com/tomz197/starfall/internal/loop/config"
)

// Milestone is one step of the progressive difficulty curve.
type Milestone struct {
	Score   int     // Minimum score that unlocks this milestone
	Level   int     // 1-based level number
	Scaling float64 // Spawn-rate scaling factor for this level
	Bucket  int     // Display band (1..DisplayBuckets)
	Label   string  // HUD text, e.g. "+45%"
}

// CurveParams describes the shape of the difficulty curve.
type CurveParams struct {
	Levels      int
	BaseScaling float64
	MaxScaling  float64
	Base        float64 // Score multiplier of the exponential term
	Growth      float64 // Per-level exponential growth rate
	Buckets     int     // Number of equal-width display bands
}

// DefaultCurveParams returns the curve used by the game.
func DefaultCurveParams() CurveParams {
	return CurveParams{
		Levels:      config.TotalLevels,
		BaseScaling: config.BaseScaling,
		MaxScaling:  config.MaxScaling,
		Base:        config.CurveBase,
		Growth:      config.CurveGrowth,
		Buckets:     config.DisplayBuckets,
	}
}

// defaultCurve is computed once on first use and shared read-only.
var defaultCurve = sync.OnceValue(func() []Milestone {
	return Generate(DefaultCurveParams())
})

// DefaultCurve returns the memoized milestones for DefaultCurveParams.
// Callers must not modify the returned slice.
func DefaultCurve() []Milestone {
	return defaultCurve()
}

// Generate builds the milestone sequence, ordered by ascending score threshold.
func Generate(p CurveParams) []Milestone {
	if p.Levels < 1 {
		return nil
	}
	if p.Buckets < 1 {
		p.Buckets = 1
	}

	milestones := make([]Milestone, 0, p.Levels)
	for level := 1; level <= p.Levels; level++ {
		scaling := p.BaseScaling
		if p.Levels > 1 {
			progress := float64(level-1) / float64(p.Levels-1)
			scaling = p.BaseScaling + (p.MaxScaling-p.BaseScaling)*progress
		}
		scaling = math.Round(scaling*100) / 100

		milestones = append(milestones, Milestone{
			Score:   ScoreThreshold(level, p.Base, p.Growth),
			Level:   level,
			Scaling: scaling,
			Bucket:  bucketFor(level, p.Levels, p.Buckets),
			Label:   fmt.Sprintf("+%d%%", int(math.Round((scaling-1.0)*100))),
		})
	}
	return milestones
}

// ScoreThreshold returns the score needed to reach level.
// Level 1 is always unlocked at score 0.
func ScoreThreshold(level int, base, growth float64) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(base * (math.Pow(growth, float64(level-1)) - 1)))
}

// bucketFor partitions 1..levels into equal-width bands numbered from 1.
func bucketFor(level, levels, buckets int) int {
	width := (levels + buckets - 1) / buckets
	b := (level-1)/width + 1
	if b > buckets {
		b = buckets
	}
	return b
}
