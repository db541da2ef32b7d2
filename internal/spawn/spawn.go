// Package spawn decides when enemies appear, which kind they are, and whether
// a destroyed enemy drops a bonus.
package spawn

import (
	"time"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// bonusWeights is the drop table for bonus types. Weights sum to 1.
var bonusWeights = []struct {
	Type   object.BonusType
	Weight float64
}{
	{object.BonusShield, 0.25},
	{object.BonusHealth, 0.20},
	{object.BonusRapidFire, 0.15},
	{object.BonusMultiShot, 0.15},
	{object.BonusMultiplier, 0.25},
}

// Controller owns the spawn timers of one session.
type Controller struct {
	rng       object.Random
	preset    difficulty.Preset
	bounds    object.Bounds
	started   time.Duration // Session start
	lastSpawn time.Duration
	spawned   bool
	rate      time.Duration
}

// New creates a spawn controller. The first enemy appears on the first tick.
func New(rng object.Random, preset difficulty.Preset, bounds object.Bounds, now time.Duration) *Controller {
	c := &Controller{rng: rng, bounds: bounds}
	c.Reset(preset, now)
	return c
}

// Reset restarts the timers for a new session.
func (c *Controller) Reset(preset difficulty.Preset, now time.Duration) {
	c.preset = preset
	c.started = now
	c.lastSpawn = 0
	c.spawned = false
	c.rate = Rate(0, preset.SpawnRateMultiplier, 1)
}

// Rate returns the enemy spawn interval. The interval shrinks by one step
// for every elapsed difficulty interval and is divided by the preset and
// progressive multipliers, never dropping below the floor divided likewise.
func Rate(elapsed time.Duration, presetMult, scaling float64) time.Duration {
	div := presetMult * scaling
	if div <= 0 {
		div = 1
	}
	steps := elapsed / config.DifficultyIncreaseInterval
	base := config.InitialSpawnRate - steps*config.SpawnRateStep

	floor := float64(config.MinSpawnRate) / div
	rate := float64(base) / div
	if rate < floor {
		rate = floor
	}
	return time.Duration(rate)
}

// UpdateRate recomputes the spawn interval. Run it every tick after the
// difficulty tracker so the current scaling is used.
func (c *Controller) UpdateRate(now time.Duration, scaling float64) time.Duration {
	c.rate = Rate(now-c.started, c.preset.SpawnRateMultiplier, scaling)
	return c.rate
}

// CurrentRate returns the last computed spawn interval.
func (c *Controller) CurrentRate() time.Duration {
	return c.rate
}

// NextEnemy returns a new enemy if the spawn gate is open, nil otherwise.
func (c *Controller) NextEnemy(now time.Duration, level int) *object.Enemy {
	if c.spawned && now-c.lastSpawn <= c.rate {
		return nil
	}
	c.lastSpawn = now
	c.spawned = true

	x := config.EnemySpawnMarginX + c.rng.Float64()*(c.bounds.Width-2*config.EnemySpawnMarginX)
	kind := SelectKind(level, c.rng.Float64())
	return object.NewEnemy(x, config.EnemySpawnY, kind,
		c.preset.EnemyHealthMultiplier, c.preset.ScoreMultiplier, c.rng)
}

// SelectKind picks an enemy kind eligible at level. draw is uniform in [0,1)
// and is scaled to the summed weight of eligible kinds; the first kind whose
// cumulative weight reaches the scaled draw wins. With no eligible kinds the
// weakest kind is returned.
func SelectKind(level int, draw float64) object.EnemyKind {
	var eligible []object.EnemyKind
	var total float64
	for _, k := range object.EnemyKinds() {
		if k.EligibleAt(level) {
			eligible = append(eligible, k)
			total += k.Spec().SpawnWeight
		}
	}
	if len(eligible) == 0 {
		return object.ScoutDrone
	}

	target := draw * total
	var cumulative float64
	for _, k := range eligible {
		cumulative += k.Spec().SpawnWeight
		if cumulative >= target {
			return k
		}
	}
	return eligible[len(eligible)-1]
}

// RollBonus decides whether a destroyed enemy at (x, y) drops a bonus.
func (c *Controller) RollBonus(x, y float64, now time.Duration) *object.BonusPickup {
	if c.rng.Float64() >= config.BonusSpawnChance {
		return nil
	}
	return object.NewBonusPickup(x, y, SelectBonus(c.rng.Float64()), now)
}

// SelectBonus maps a uniform draw in [0,1) onto the bonus drop table.
func SelectBonus(draw float64) object.BonusType {
	var cumulative float64
	for _, b := range bonusWeights {
		cumulative += b.Weight
		if draw <= cumulative {
			return b.Type
		}
	}
	return bonusWeights[len(bonusWeights)-1].Type
}
