package object

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
)

// Owner identifies who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// trailFade is the life lost by every trail point per tick.
const trailFade = 0.15

// TrailPoint is a past bullet position.
type TrailPoint struct {
	X, Y float64
	Life float64 // 1 when recorded, fading to 0
}

// Trail is a fixed-size ring of recent positions, oldest first.
type Trail struct {
	points [config.BulletTrailLength]TrailPoint
	start  int
	n      int
}

// Push records a new position, overwriting the oldest once full.
func (t *Trail) Push(p TrailPoint) {
	if t.n < len(t.points) {
		t.points[(t.start+t.n)%len(t.points)] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	return t.n
}

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) TrailPoint {
	return t.points[(t.start+i)%len(t.points)]
}

// fade reduces the life of every point and drops the dead ones. Points are
// pushed with equal life and fade equally, so the dead ones are always the oldest.
func (t *Trail) fade(amount float64) {
	for i := 0; i < t.n; i++ {
		t.points[(t.start+i)%len(t.points)].Life -= amount
	}
	for t.n > 0 && t.points[t.start].Life <= 0 {
		t.start = (t.start + 1) % len(t.points)
		t.n--
	}
}

// Bullet is a projectile fired by the player or an enemy.
type Bullet struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Owner    Owner
	Kind     EnemyKind // Firing enemy kind, meaningful for enemy bullets only
	Color    draw.Color
	Pulse    float64
	Trail    Trail
	Consumed bool // Set when the bullet has hit something
}

// NewPlayerBullet creates a bullet fired by the player.
func NewPlayerBullet(x, y, vx, vy float64) Bullet {
	return Bullet{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: config.BulletRadius,
		Owner:  OwnerPlayer,
		Color:  PlayerColor,
	}
}

// NewEnemyBullet creates a bullet fired by an enemy of the given kind.
func NewEnemyBullet(x, y, vx, vy float64, kind EnemyKind) Bullet {
	return Bullet{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: config.BulletRadius,
		Owner:  OwnerEnemy,
		Kind:   kind,
		Color:  kind.Spec().Color,
	}
}

// Update records the current position in the trail and advances the bullet.
func (b *Bullet) Update() {
	b.Trail.Push(TrailPoint{X: b.X, Y: b.Y, Life: 1})
	b.Trail.fade(trailFade)

	b.X += b.VX
	b.Y += b.VY
	b.Pulse += 0.2
}

// IsOffScreen reports whether the bullet has left the playfield margin.
func (b *Bullet) IsOffScreen(bounds Bounds) bool {
	m := config.BulletOffScreenMargin
	return b.X < -m || b.X > bounds.Width+m || b.Y < -m || b.Y > bounds.Height+m
}

// IsDestroyed reports whether the bullet should be removed.
func (b *Bullet) IsDestroyed() bool {
	return b.Consumed
}
