// Package fx defines the fire-and-forget effect sinks the simulation talks
// to: audio cues and haptic patterns.
package fx

import (
	"sync"
	"time"
)

// Cue names an audio cue.
type Cue int

const (
	CueShoot Cue = iota
	CueEnemyShoot
	CueHit
	CueExplosion
	CueDamage
	CueSuperWeapon
	CueGameOver
	CueLevelUp
	CueBonus
)

var cueNames = [...]string{
	CueShoot:       "shoot",
	CueEnemyShoot:  "enemyShoot",
	CueHit:         "hit",
	CueExplosion:   "explosion",
	CueDamage:      "damage",
	CueSuperWeapon: "superWeapon",
	CueGameOver:    "gameOver",
	CueLevelUp:     "levelUp",
	CueBonus:       "bonus",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// Sound is a cue request. Size scales the explosion cue and is 1 otherwise.
type Sound struct {
	Cue  Cue
	Size float64
}

// Play builds a request for a cue with unit size.
func Play(c Cue) Sound {
	return Sound{Cue: c, Size: 1}
}

// Explosion builds an explosion request of the given size.
func Explosion(size float64) Sound {
	return Sound{Cue: CueExplosion, Size: size}
}

// Pattern is a vibration sequence: on, off, on, ... durations.
type Pattern []time.Duration

// Vibration patterns.
var (
	PatternShoot       = Pattern{50 * time.Millisecond}
	PatternHit         = Pattern{200 * time.Millisecond}
	PatternDamage      = Pattern{300 * time.Millisecond}
	PatternSuperWeapon = Pattern{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}
	PatternExplosion   = Pattern{150 * time.Millisecond}
	PatternBonus       = Pattern{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond}
)

// Total returns the summed length of the pattern.
func (p Pattern) Total() time.Duration {
	var d time.Duration
	for _, x := range p {
		d += x
	}
	return d
}

// AudioSink plays audio cues. Implementations must not block.
type AudioSink interface {
	Play(s Sound)
}

// HapticSink plays vibration patterns. Implementations must not block.
type HapticSink interface {
	Vibrate(p Pattern)
}

// Nop discards every request.
type Nop struct{}

func (Nop) Play(Sound)      {}
func (Nop) Vibrate(Pattern) {}

// GuardAudio wraps a sink so that a panicking implementation is dropped
// silently. A nil sink becomes Nop.
func GuardAudio(s AudioSink) AudioSink {
	if s == nil {
		return Nop{}
	}
	if g, ok := s.(guardedAudio); ok {
		return g
	}
	return guardedAudio{s}
}

type guardedAudio struct{ sink AudioSink }

func (g guardedAudio) Play(s Sound) {
	defer func() { _ = recover() }()
	g.sink.Play(s)
}

// GuardHaptics wraps a sink so that a panicking implementation is dropped
// silently. A nil sink becomes Nop.
func GuardHaptics(s HapticSink) HapticSink {
	if s == nil {
		return Nop{}
	}
	if g, ok := s.(guardedHaptics); ok {
		return g
	}
	return guardedHaptics{s}
}

type guardedHaptics struct{ sink HapticSink }

func (g guardedHaptics) Vibrate(p Pattern) {
	defer func() { _ = recover() }()
	g.sink.Vibrate(p)
}

// Recorder stores every request it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	sounds   []Sound
	patterns []Pattern
}

func (r *Recorder) Play(s Sound) {
	r.mu.Lock()
	r.sounds = append(r.sounds, s)
	r.mu.Unlock()
}

func (r *Recorder) Vibrate(p Pattern) {
	r.mu.Lock()
	r.patterns = append(r.patterns, p)
	r.mu.Unlock()
}

// Sounds returns a copy of the recorded cue requests.
func (r *Recorder) Sounds() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sound(nil), r.sounds...)
}

// Patterns returns a copy of the recorded vibration requests.
func (r *Recorder) Patterns() []Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Pattern(nil), r.patterns...)
}

// Count returns how many times a cue was requested.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sounds {
		if s.Cue == c {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sounds = nil
	r.patterns = nil
	r.mu.Unlock()
}
