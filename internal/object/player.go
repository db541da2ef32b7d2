package object

import (
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

// PlayerColor is the ship and player-bullet color.
const PlayerColor draw.Color = 0x32B8C6

// Player is the ship controlled by the user.
type Player struct {
	X, Y     float64 // Position (center of ship)
	Size     float64 // Collision radius
	Speed    float64 // Units per tick at full input deflection
	Health   int
	LastFire time.Duration // Simulation time of the last volley
	Pulse    float64       // Glow animation phase
	fired    bool          // Whether any volley has been fired yet
}

// NewPlayer creates a ship at the given position with full health.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Size:   config.PlayerSize,
		Speed:  config.PlayerSpeed,
		Health: config.InitialHealth,
	}
}

// Move applies a normalized input direction and keeps the ship inside the
// playfield minus a margin of 1.5x its size.
func (p *Player) Move(dx, dy float64, b Bounds) {
	p.X += dx * p.Speed
	p.Y += dy * p.Speed

	margin := p.Size * config.PlayerBoundsMargin
	p.X = physics.Clamp(p.X, margin, b.Width-margin)
	p.Y = physics.Clamp(p.Y, margin, b.Height-margin)
}

// Update advances cosmetic state.
func (p *Player) Update() {
	p.Pulse += 0.08
}

// CanFire reports whether the fire gate is open at now.
func (p *Player) CanFire(now, interval time.Duration) bool {
	return !p.fired || now-p.LastFire >= interval
}

// Shoot fires a volley if the fire gate is open. multiShot fires a
// three-bullet spread; otherwise two parallel bullets leave the wings.
func (p *Player) Shoot(now, interval time.Duration, multiShot bool) []Bullet {
	if !p.CanFire(now, interval) {
		return nil
	}
	p.LastFire = now
	p.fired = true

	noseY := p.Y - p.Size*0.5
	speed := -config.PlayerBulletSpeed
	if multiShot {
		spread := config.MultiShotSpreadSpeed
		return []Bullet{
			NewPlayerBullet(p.X-p.Size*0.6, noseY, -spread, speed),
			NewPlayerBullet(p.X, noseY, 0, speed),
			NewPlayerBullet(p.X+p.Size*0.6, noseY, spread, speed),
		}
	}
	return []Bullet{
		NewPlayerBullet(p.X-p.Size*0.4, noseY, 0, speed),
		NewPlayerBullet(p.X+p.Size*0.4, noseY, 0, speed),
	}
}

// TakeDamage removes one health point. Returns true if the ship is destroyed.
func (p *Player) TakeDamage() bool {
	if p.Health > 0 {
		p.Health--
	}
	return p.IsDead()
}

// Heal restores one health point up to maxHealth. Returns true if health changed.
func (p *Player) Heal(maxHealth int) bool {
	if p.Health >= maxHealth {
		return false
	}
	p.Health++
	return true
}

// IsDead reports whether the ship has no health left.
func (p *Player) IsDead() bool {
	return p.Health <= 0
}
