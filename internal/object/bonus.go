package object

import (
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

// BonusType identifies a collectible power-up.
type BonusType int

const (
	BonusShield BonusType = iota
	BonusHealth
	BonusRapidFire
	BonusMultiShot
	BonusMultiplier

	bonusTypeCount
)

var bonusNames = [bonusTypeCount]string{"shield", "health", "rapid_fire", "multi_shot", "multiplier"}

var bonusColors = [bonusTypeCount]draw.Color{0x00AAFF, 0x00FF66, 0xFFAA00, 0xFF00FF, 0xFFD700}

var bonusIcons = [bonusTypeCount]rune{'S', '+', 'R', 'M', 'x'}

// BonusTypes returns every bonus type.
func BonusTypes() []BonusType {
	types := make([]BonusType, bonusTypeCount)
	for i := range types {
		types[i] = BonusType(i)
	}
	return types
}

// RandomBonusType picks a type uniformly.
func RandomBonusType(rng Random) BonusType {
	return BonusType(rng.Intn(int(bonusTypeCount)))
}

// Valid reports whether t names a known type.
func (t BonusType) Valid() bool {
	return t >= 0 && t < bonusTypeCount
}

func (t BonusType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return bonusNames[t]
}

// Color returns the pickup color.
func (t BonusType) Color() draw.Color {
	if !t.Valid() {
		return White
	}
	return bonusColors[t]
}

// Icon returns the glyph drawn inside the pickup.
func (t BonusType) Icon() rune {
	if !t.Valid() {
		return '?'
	}
	return bonusIcons[t]
}

// BonusPickup is a collectible falling toward the bottom of the playfield.
type BonusPickup struct {
	X, Y      float64
	Size      float64
	Type      BonusType
	Spawned   time.Duration // Simulation time of spawn
	Lifetime  time.Duration
	Life      float64 // Opacity, 1 until the fade begins
	Pulse     float64
	Collected bool
}

// NewBonusPickup creates a pickup at the given position.
func NewBonusPickup(x, y float64, t BonusType, now time.Duration) *BonusPickup {
	return &BonusPickup{
		X:        x,
		Y:        y,
		Size:     config.BonusSize,
		Type:     t,
		Spawned:  now,
		Lifetime: config.BonusLifetime,
		Life:     1,
	}
}

// Update makes the pickup fall, drift toward a nearby player and fade near
// the end of its lifetime.
func (b *BonusPickup) Update(now time.Duration, playerX, playerY float64) {
	b.Pulse += 0.1
	b.Y += config.BonusFallSpeed

	if nx, ny, dist, ok := physics.Direction(b.X, b.Y, playerX, playerY); ok && dist < config.BonusAttractionRadius {
		b.X += nx * config.BonusAttractionSpeed
		b.Y += ny * config.BonusAttractionSpeed
	}

	if b.Lifetime > 0 {
		elapsed := float64(now-b.Spawned) / float64(b.Lifetime)
		if elapsed > config.BonusFadeStart {
			b.Life = 1 - (elapsed-config.BonusFadeStart)/(1-config.BonusFadeStart)
		}
	}
}

// Touches reports whether a ship of the given size at (x, y) collects the pickup.
func (b *BonusPickup) Touches(x, y, size float64) bool {
	return physics.Distance(b.X, b.Y, x, y) < b.Size+size
}

// IsExpired reports whether the pickup should be removed uncollected.
func (b *BonusPickup) IsExpired(now time.Duration, bounds Bounds) bool {
	return b.Life <= 0 || now-b.Spawned > b.Lifetime || b.Y > bounds.Height+b.Size
}
