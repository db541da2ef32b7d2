package session

import (
	"time"

	"github.com/tomz197/starfall/internal/bonus"
	"github.com/tomz197/starfall/internal/object"
)

// Snapshot is a read-only copy of the world for one frame. Hosts may keep
// it across ticks; it shares no memory with the session.
type Snapshot struct {
	Phase      Phase
	Now        time.Duration
	Bounds     object.Bounds
	Player     object.Player
	Enemies    []object.Enemy
	Bullets    []object.Bullet
	Particles  []object.Particle
	Shockwaves []object.Shockwave
	Pickups    []object.BonusPickup
	Shake      Shake
	Shield     bool
	ShieldLeft time.Duration
	SuperArmed bool // Super weapon is firing
}

// Snapshot copies the current world into a new snapshot.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.SnapshotInto(&snap)
	return snap
}

// SnapshotInto copies the current world into dst, reusing its slices.
func (s *Session) SnapshotInto(dst *Snapshot) {
	dst.Phase = s.phase
	dst.Now = s.now
	dst.Bounds = s.bounds
	dst.Shake = s.shake
	dst.Shield = s.bonuses.Active(object.BonusShield)
	dst.ShieldLeft = s.bonuses.RemainingFor(object.BonusShield, s.now)
	dst.SuperArmed = s.super.Active()

	dst.Player = object.Player{}
	if s.player != nil {
		dst.Player = *s.player
	}

	dst.Enemies = dst.Enemies[:0]
	for _, e := range s.enemies {
		dst.Enemies = append(dst.Enemies, *e)
	}
	dst.Bullets = append(dst.Bullets[:0], s.bullets...)
	dst.Particles = append(dst.Particles[:0], s.particles...)
	dst.Shockwaves = append(dst.Shockwaves[:0], s.shockwaves...)
	dst.Pickups = dst.Pickups[:0]
	for _, p := range s.pickups {
		dst.Pickups = append(dst.Pickups, *p)
	}
}

// HUD is the status line data.
type HUD struct {
	Phase      Phase
	Difficulty string
	Score      int
	Health     int
	MaxHealth  int

	Charge      float64 // Super weapon charge in [0,1]
	SuperReady  bool
	SuperActive bool

	Level   int
	Label   string // Scaling label, e.g. "+45%"
	Bucket  int    // Coarse difficulty bucket for display
	Scaling float64

	Bonuses []bonus.Status
}

// HUD returns the status data as of the last tick.
func (s *Session) HUD() HUD {
	m := s.tracker.Milestone()
	h := HUD{
		Phase:       s.phase,
		Difficulty:  s.preset.Name,
		Score:       s.score,
		MaxHealth:   s.bonuses.MaxHealth(),
		Charge:      s.super.Fraction(),
		SuperReady:  s.super.Ready(),
		SuperActive: s.super.Active(),
		Level:       m.Level,
		Label:       m.Label,
		Bucket:      m.Bucket,
		Scaling:     m.Scaling,
		Bonuses:     s.bonuses.Remaining(s.now),
	}
	if s.player != nil {
		h.Health = s.player.Health
	}
	return h
}
