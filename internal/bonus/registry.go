// Package bonus tracks the time-boxed power-ups active in a session.
package bonus

import (
	"time"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Duration returns how long a collected bonus stays active. Instant bonuses
// return 0.
func Duration(t object.BonusType) time.Duration {
	switch t {
	case object.BonusShield:
		return config.ShieldDuration
	case object.BonusRapidFire:
		return config.RapidFireDuration
	case object.BonusMultiShot:
		return config.MultiShotDuration
	case object.BonusMultiplier:
		return config.MultiplierDuration
	default:
		return 0
	}
}

type entry struct {
	start    time.Duration
	duration time.Duration
}

// Status describes an active bonus for the HUD.
type Status struct {
	Type      object.BonusType
	Remaining time.Duration
	Seconds   int // Remaining whole seconds, rounded up
}

// Registry holds at most one active entry per bonus type.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	active    map[object.BonusType]entry
	maxHealth int
}

// NewRegistry creates an empty registry. Health bonuses never heal above maxHealth.
func NewRegistry(maxHealth int) *Registry {
	return &Registry{
		active:    make(map[object.BonusType]entry),
		maxHealth: maxHealth,
	}
}

// MaxHealth returns the health cap applied by health bonuses.
func (r *Registry) MaxHealth() int { return r.maxHealth }

// Reset drops every active bonus.
func (r *Registry) Reset() {
	clear(r.active)
}

// Collect applies a picked-up bonus. Durable bonuses are inserted or
// refreshed with a new start time; health heals the player immediately and
// leaves no entry. Returns false for unknown types.
func (r *Registry) Collect(t object.BonusType, now time.Duration, p *object.Player) bool {
	if t == object.BonusHealth {
		if p != nil {
			p.Heal(r.maxHealth)
		}
		return true
	}
	d := Duration(t)
	if d <= 0 {
		return false
	}
	r.active[t] = entry{start: now, duration: d}
	return true
}

// Sweep removes every entry whose duration has fully elapsed and returns
// the expired types in a stable order.
func (r *Registry) Sweep(now time.Duration) []object.BonusType {
	var expired []object.BonusType
	for _, t := range object.BonusTypes() {
		e, ok := r.active[t]
		if ok && now-e.start >= e.duration {
			delete(r.active, t)
			expired = append(expired, t)
		}
	}
	return expired
}

// Active reports whether t is currently active.
func (r *Registry) Active(t object.BonusType) bool {
	_, ok := r.active[t]
	return ok
}

// Consume removes an active bonus. Returns false if it was not active.
func (r *Registry) Consume(t object.BonusType) bool {
	if _, ok := r.active[t]; !ok {
		return false
	}
	delete(r.active, t)
	return true
}

// FireInterval returns the player's fire interval under the active bonuses.
func (r *Registry) FireInterval() time.Duration {
	if r.Active(object.BonusRapidFire) {
		return config.RapidFireInterval
	}
	return config.DefaultFireInterval
}

// MultiShot reports whether the three-bullet spread is active.
func (r *Registry) MultiShot() bool {
	return r.Active(object.BonusMultiShot)
}

// ScoreFactor returns the kill score multiplier.
func (r *Registry) ScoreFactor() int {
	if r.Active(object.BonusMultiplier) {
		return 2
	}
	return 1
}

// Remaining lists the active bonuses with their time left at now.
func (r *Registry) Remaining(now time.Duration) []Status {
	var out []Status
	for _, t := range object.BonusTypes() {
		e, ok := r.active[t]
		if !ok {
			continue
		}
		left := e.duration - (now - e.start)
		if left < 0 {
			left = 0
		}
		out = append(out, Status{
			Type:      t,
			Remaining: left,
			Seconds:   int((left + time.Second - 1) / time.Second),
		})
	}
	return out
}

// RemainingFor returns the time left on bonus t at now, or zero if inactive.
func (r *Registry) RemainingFor(t object.BonusType, now time.Duration) time.Duration {
	e, ok := r.active[t]
	if !ok {
		return 0
	}
	return max(e.duration-(now-e.start), 0)
}
