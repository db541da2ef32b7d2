package session

import (
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Effect colors.
const (
	colorShieldBreak draw.Color = 0x00CCFF
	colorDamage      draw.Color = 0xFFD700
	colorCollision   draw.Color = 0xFF6347
	colorFlashGold   draw.Color = object.Gold
	colorFlashOrange draw.Color = 0xFFA500
)

// Shake is the decaying screen shake. X and Y are the render offset for the
// current tick.
type Shake struct {
	Intensity float64
	X, Y      float64
}

func (s *Shake) kick(intensity float64) {
	s.Intensity = intensity
}

func (s *Shake) update(rng object.Random) {
	if s.Intensity <= config.ShakeEpsilon {
		*s = Shake{}
		return
	}
	s.X = (rng.Float64() - 0.5) * s.Intensity * config.ShakeAmplitude
	s.Y = (rng.Float64() - 0.5) * s.Intensity * config.ShakeAmplitude
	s.Intensity *= config.ShakeDecay
}

// explode adds the particles and ring of a destroyed enemy.
func (s *Session) explode(x, y, size float64, color draw.Color) {
	s.particles = object.AppendExplosion(s.particles, x, y, size, color, s.rng)
	s.shockwaves = append(s.shockwaves, object.NewShockwave(x, y, color))
}

func (s *Session) burst(x, y float64, count int, color draw.Color, kind object.ParticleKind) {
	s.particles = object.AppendBurst(s.particles, x, y, count, color, kind, s.rng)
}

// collectBonus applies a touched pickup.
func (s *Session) collectBonus(b *object.BonusPickup, now time.Duration) {
	b.Collected = true
	s.audio.Play(fx.Play(fx.CueBonus))
	s.haptics.Vibrate(fx.PatternBonus)
	s.burst(b.X, b.Y, config.BonusPickupCount, b.Type.Color(), object.ParticleGlow)
	s.bonuses.Collect(b.Type, now, s.player)
	s.logger.Debug("bonus collected", "type", b.Type, "health", s.player.Health)
}

// activateSuperWeapon destroys every enemy on screen. It fails unless the
// weapon is fully charged and idle.
func (s *Session) activateSuperWeapon(now time.Duration) bool {
	if !s.super.Activate(now) {
		return false
	}

	s.audio.Play(fx.Play(fx.CueSuperWeapon))
	s.haptics.Vibrate(fx.PatternSuperWeapon)
	s.shake.kick(config.SuperWeaponShake)

	px, py := s.player.X, s.player.Y
	s.shockwaves = append(s.shockwaves, object.NewBlast(px, py, s.bounds))
	for i := 0; i < config.SuperWeaponFlashParticles; i++ {
		c := colorFlashGold
		if i%2 == 1 {
			c = colorFlashOrange
		}
		s.particles = append(s.particles, object.NewParticle(px, py, c, object.ParticleGlow, s.rng))
	}

	killed := 0
	for _, e := range s.enemies {
		if e.Destroyed {
			continue
		}
		s.score += e.Points
		s.explode(e.X, e.Y, e.Size, e.Color)
		e.Destroyed = true
		killed++
	}
	clear(s.enemies)
	s.enemies = s.enemies[:0]

	s.logger.Debug("super weapon", "killed", killed, "score", s.score)
	return true
}
