package session

import (
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// resolveCollisions runs the three collision phases in order. It stops as
// soon as the game is over.
func (s *Session) resolveCollisions() {
	s.resolvePlayerBullets()
	if !object.Finite(s.player.X, s.player.Y) {
		return
	}
	if s.resolveEnemyBullets() {
		return
	}
	s.resolveBodyContact()
}

// resolvePlayerBullets applies player bullets to enemies. Each bullet hits
// at most one enemy: the lowest-indexed one it overlaps.
func (s *Session) resolvePlayerBullets() {
	s.grid.Clear()
	for i, e := range s.enemies {
		if !e.Destroyed && object.Finite(e.X, e.Y) {
			s.grid.Insert(e.X, e.Y, i)
		}
	}

	for i := range s.bullets {
		b := &s.bullets[i]
		if b.Owner != object.OwnerPlayer || b.Consumed || !object.Finite(b.X, b.Y) {
			continue
		}

		hit := -1
		s.grid.QueryAround(b.X, b.Y, func(j int) bool {
			e := s.enemies[j]
			if e.Destroyed || (hit >= 0 && j >= hit) {
				return false
			}
			if physics.CirclesOverlap(b.X, b.Y, b.Radius, e.X, e.Y, e.Size) {
				hit = j
			}
			return false
		})
		if hit < 0 {
			continue
		}

		b.Consumed = true
		s.hitEnemy(s.enemies[hit])
	}
}

func (s *Session) hitEnemy(e *object.Enemy) {
	if !e.Hit() {
		s.audio.Play(fx.Play(fx.CueHit))
		s.burst(e.X, e.Y, config.HitSparkCount, e.Color, object.ParticleNormal)
		return
	}

	s.score += e.Points * s.bonuses.ScoreFactor()
	if s.super.AddCharge(e.Points) {
		s.logger.Debug("super weapon ready")
	}
	if p := s.spawner.RollBonus(e.X, e.Y, s.now); p != nil {
		s.pickups = append(s.pickups, p)
	}

	s.audio.Play(fx.Explosion(e.Size / config.ExplosionSizeDivisor))
	s.haptics.Vibrate(fx.PatternExplosion)
	s.explode(e.X, e.Y, e.Size, e.Color)
	if e.Size > config.BigEnemySize {
		s.shake.kick(config.ShakeBigEnemy)
	}
}

// resolveEnemyBullets applies enemy bullets to the ship and reports whether
// the game ended.
func (s *Session) resolveEnemyBullets() bool {
	p := s.player
	for i := range s.bullets {
		b := &s.bullets[i]
		if b.Owner != object.OwnerEnemy || b.Consumed || !object.Finite(b.X, b.Y) {
			continue
		}
		if !physics.CirclesOverlap(b.X, b.Y, b.Radius, p.X, p.Y, p.Size) {
			continue
		}
		b.Consumed = true
		if s.damagePlayer() {
			return true
		}
	}
	return false
}

// resolveBodyContact destroys enemies that ram the ship. Rammed enemies
// award no score.
func (s *Session) resolveBodyContact() {
	p := s.player
	for _, e := range s.enemies {
		if e.Destroyed || !object.Finite(e.X, e.Y) {
			continue
		}
		if !physics.CirclesOverlap(p.X, p.Y, p.Size, e.X, e.Y, e.Size) {
			continue
		}

		e.Destroyed = true
		s.audio.Play(fx.Explosion(config.BodyCollisionCueSize))
		s.explode(e.X, e.Y, e.Size, colorCollision)
		if s.damagePlayer() {
			return
		}
	}
}

// damagePlayer applies one hit to the ship. An active shield absorbs it.
// It reports whether the hit ended the game.
func (s *Session) damagePlayer() bool {
	p := s.player
	s.audio.Play(fx.Play(fx.CueDamage))
	s.haptics.Vibrate(fx.PatternDamage)
	s.shake.kick(config.ShakeDamage)

	if s.bonuses.Consume(object.BonusShield) {
		s.burst(p.X, p.Y, config.ShieldBreakCount, colorShieldBreak, object.ParticleGlow)
		return false
	}

	s.burst(p.X, p.Y, config.DamageSparkCount, colorDamage, object.ParticleNormal)
	if p.TakeDamage() {
		s.gameOver()
		return true
	}
	return false
}
