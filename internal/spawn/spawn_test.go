package spawn

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// seqRand replays a fixed sequence of draws, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i]
	if r.i < len(r.vals)-1 {
		r.i++
	}
	return v
}

func (r *seqRand) Intn(int) int { return 0 }

var field = object.Bounds{Width: config.CanvasWidth, Height: config.CanvasHeight}

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		preset  float64
		scaling float64
		want    time.Duration
	}{
		{"start", 0, 1, 1, 2000 * time.Millisecond},
		{"one step", 50 * time.Second, 1, 1, 1800 * time.Millisecond},
		{"just before step", 49999 * time.Millisecond, 1, 1, 2000 * time.Millisecond},
		{"floor", 500 * time.Second, 1, 1, 400 * time.Millisecond},
		{"scaled", 0, 1, 2, 1000 * time.Millisecond},
		{"scaled floor", time.Hour, 1, 2, 200 * time.Millisecond},
		{"hard preset", 0, 2, 1, 1000 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.elapsed, tt.preset, tt.scaling); got != tt.want {
				t.Errorf("Rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectKind(t *testing.T) {
	tests := []struct {
		level int
		draw  float64
		want  object.EnemyKind
	}{
		{1, 0.99, object.ScoutDrone},
		{12, 0.5, object.ScoutDrone},  // target 0.9 of 1.8
		{12, 0.6, object.FighterWasp}, // target 1.08 of 1.8
		{100, 0, object.VoidEntity},   // first eligible in table order
		{100, 0.99, object.SwarmCommander},
		{500, 0.5, object.ScoutDrone}, // nothing eligible
	}
	for _, tt := range tests {
		if got := SelectKind(tt.level, tt.draw); got != tt.want {
			t.Errorf("SelectKind(%d, %v) = %v, want %v", tt.level, tt.draw, got, tt.want)
		}
	}
}

func TestSelectKindOnlyEligible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for level := 1; level <= 100; level++ {
		for i := 0; i < 20; i++ {
			k := SelectKind(level, rng.Float64())
			if !k.EligibleAt(level) {
				t.Fatalf("level %d picked ineligible %v", level, k)
			}
		}
	}
}

func TestSelectBonus(t *testing.T) {
	tests := []struct {
		draw float64
		want object.BonusType
	}{
		{0, object.BonusShield},
		{0.25, object.BonusShield},
		{0.3, object.BonusHealth},
		{0.5, object.BonusRapidFire},
		{0.7, object.BonusMultiShot},
		{0.99, object.BonusMultiplier},
	}
	for _, tt := range tests {
		if got := SelectBonus(tt.draw); got != tt.want {
			t.Errorf("SelectBonus(%v) = %v, want %v", tt.draw, got, tt.want)
		}
	}
}

func TestNextEnemyGate(t *testing.T) {
	c := New(&seqRand{vals: []float64{0.5}}, difficulty.Normal, field, 0)

	if c.NextEnemy(0, 1) == nil {
		t.Fatal("first tick should spawn")
	}
	rate := c.UpdateRate(time.Second, 1)
	if c.NextEnemy(rate, 1) != nil {
		t.Error("spawned when elapsed equals the rate")
	}
	e := c.NextEnemy(rate+time.Millisecond, 1)
	if e == nil {
		t.Fatal("gate did not reopen")
	}
	if e.Y != config.EnemySpawnY || e.X < config.EnemySpawnMarginX || e.X > field.Width-config.EnemySpawnMarginX {
		t.Errorf("spawn position (%v,%v) out of range", e.X, e.Y)
	}
}

func TestHardPresetScalesEnemyHealth(t *testing.T) {
	c := New(&seqRand{vals: []float64{0.5}}, difficulty.Hard, field, 0)
	e := c.NextEnemy(0, 1)
	if e.Kind != object.ScoutDrone {
		t.Fatalf("level 1 spawned %v", e.Kind)
	}
	if e.Health != 3 || e.MaxHealth != 3 {
		t.Errorf("health = %d/%d, want 3/3", e.Health, e.MaxHealth)
	}
}

func TestRollBonus(t *testing.T) {
	c := New(&seqRand{vals: []float64{0.9}}, difficulty.Normal, field, 0)
	if b := c.RollBonus(10, 10, 0); b != nil {
		t.Error("draw above the drop chance produced a bonus")
	}

	c = New(&seqRand{vals: []float64{0.1, 0.3}}, difficulty.Normal, field, 0)
	b := c.RollBonus(10, 20, time.Second)
	if b == nil {
		t.Fatal("draw below the drop chance produced nothing")
	}
	if b.Type != object.BonusHealth || b.X != 10 || b.Y != 20 || b.Spawned != time.Second {
		t.Errorf("unexpected pickup %+v", b)
	}
}
