package difficulty

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned by ParsePreset for unrecognized names.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Preset holds the multipliers of a selectable difficulty.
type Preset struct {
	Name                  string
	SpawnRateMultiplier   float64
	EnemyHealthMultiplier float64
	EnemyDamageMultiplier float64
	ScoreMultiplier       float64
}

// Built-in presets.
var (
	Easy = Preset{
		Name:                  "easy",
		SpawnRateMultiplier:   0.7,
		EnemyHealthMultiplier: 0.8,
		EnemyDamageMultiplier: 0.6,
		ScoreMultiplier:       1.5,
	}
	Normal = Preset{
		Name:                  "normal",
		SpawnRateMultiplier:   1.0,
		EnemyHealthMultiplier: 1.0,
		EnemyDamageMultiplier: 1.0,
		ScoreMultiplier:       1.0,
	}
	Hard = Preset{
		Name:                  "hard",
		SpawnRateMultiplier:   1.4,
		EnemyHealthMultiplier: 1.3,
		EnemyDamageMultiplier: 1.5,
		ScoreMultiplier:       0.7,
	}
)

// Presets lists the built-in presets from easiest to hardest.
func Presets() []Preset {
	return []Preset{Easy, Normal, Hard}
}

// ParsePreset looks up a preset by name (case-insensitive).
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "", "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
}
