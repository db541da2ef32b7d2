// Package session owns the authoritative state of one game and advances it
// in fixed ticks. All mutation happens inside Tick or the session commands;
// hosts read the result through Snapshot and HUD.
package session

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/bonus"
	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
	"github.com/tomz197/starfall/internal/spawn"
	"github.com/tomz197/starfall/internal/superweapon"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // No game started, or ended by the player
	PhasePlaying               // Ticks advance the simulation
	PhasePaused                // Ticks are ignored
	PhaseGameOver              // The ship was destroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Input is the player intent for one tick.
type Input struct {
	MoveX, MoveY float64 // Normalized direction in [-1,1]
	Fire         bool    // Fire intent; ignored when auto-fire is on
	SuperWeapon  bool    // Request super weapon activation
}

// Options configures a session. Zero values select defaults.
type Options struct {
	Bounds   object.Bounds
	Curve    []difficulty.Milestone
	Rand     object.Random
	Audio    fx.AudioSink
	Haptics  fx.HapticSink
	Logger   *log.Logger
	AutoFire bool
}

// Session is one single-player game.
type Session struct {
	bounds   object.Bounds
	rng      object.Random
	audio    fx.AudioSink
	haptics  fx.HapticSink
	logger   *log.Logger
	autoFire bool

	phase   Phase
	preset  difficulty.Preset
	started time.Duration
	now     time.Duration // Time of the last tick
	ticks   uint64

	player     *object.Player
	enemies    []*object.Enemy
	bullets    []object.Bullet
	particles  []object.Particle
	shockwaves []object.Shockwave
	pickups    []*object.BonusPickup
	score      int
	shake      Shake

	tracker *difficulty.Tracker
	spawner *spawn.Controller
	bonuses *bonus.Registry
	super   *superweapon.Controller
	grid    *physics.SpatialGrid
}

// New creates an idle session.
func New(opts Options) *Session {
	if opts.Bounds.Width <= 0 || opts.Bounds.Height <= 0 {
		opts.Bounds = object.Bounds{Width: config.CanvasWidth, Height: config.CanvasHeight}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Session{
		bounds:   opts.Bounds,
		rng:      opts.Rand,
		audio:    fx.GuardAudio(opts.Audio),
		haptics:  fx.GuardHaptics(opts.Haptics),
		logger:   opts.Logger,
		autoFire: opts.AutoFire,
		preset:   difficulty.Normal,
		tracker:  difficulty.NewTracker(opts.Curve),
		spawner:  spawn.New(opts.Rand, difficulty.Normal, opts.Bounds, 0),
		bonuses:  bonus.NewRegistry(config.InitialHealth),
		super:    superweapon.New(config.SuperWeaponThreshold, config.SuperWeaponDuration),
		// Cell size covers the largest bullet-enemy and ship-enemy reach.
		grid: physics.NewSpatialGrid(opts.Bounds.Width, opts.Bounds.Height, config.BulletRadius+maxEnemySize()),
	}
}

func maxEnemySize() float64 {
	var m float64
	for _, k := range object.EnemyKinds() {
		m = math.Max(m, k.Spec().Size)
	}
	return math.Max(m, config.PlayerSize)
}

// Start begins a new game with the given difficulty preset. now is the
// simulation time of the first tick.
func (s *Session) Start(preset difficulty.Preset, now time.Duration) {
	s.preset = preset
	s.phase = PhasePlaying
	s.started = now
	s.now = now
	s.ticks = 0

	s.player = object.NewPlayer(s.bounds.Width/2, s.bounds.Height-config.PlayerStartOffsetY)
	s.enemies = s.enemies[:0]
	s.bullets = s.bullets[:0]
	s.particles = s.particles[:0]
	s.shockwaves = s.shockwaves[:0]
	s.pickups = s.pickups[:0]
	s.score = 0
	s.shake = Shake{}

	s.tracker.Reset()
	s.spawner.Reset(preset, now)
	s.bonuses.Reset()
	s.super.Reset()

	s.logger.Debug("session started", "difficulty", preset.Name)
}

// Pause freezes the game. Only a playing session can be paused.
func (s *Session) Pause() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.phase = PhasePaused
	return true
}

// Resume continues a paused game. The caller's time source must not have
// advanced while paused.
func (s *Session) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.phase = PhasePlaying
	return true
}

// End stops the game without a game-over. The final state stays readable.
func (s *Session) End() {
	if s.phase == PhasePlaying || s.phase == PhasePaused {
		s.logger.Debug("session ended", "score", s.score, "level", s.tracker.Level())
		s.phase = PhaseIdle
	}
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Preset returns the difficulty the session was started with.
func (s *Session) Preset() difficulty.Preset { return s.preset }

// Ticks returns the number of ticks simulated since Start.
func (s *Session) Ticks() uint64 { return s.ticks }

// ActivateSuperWeapon fires the super weapon if it is charged. It is the
// same as setting Input.SuperWeapon on the next tick, applied immediately.
func (s *Session) ActivateSuperWeapon(now time.Duration) bool {
	if s.phase != PhasePlaying {
		return false
	}
	return s.activateSuperWeapon(now)
}

// Tick advances the simulation to now. It does nothing unless the session
// is playing.
func (s *Session) Tick(now time.Duration, in Input) {
	if s.phase != PhasePlaying {
		return
	}
	s.now = now
	s.ticks++

	s.updateDifficulty()
	s.spawner.UpdateRate(now, s.tracker.Scaling())
	s.bonuses.Sweep(now)
	if s.super.Update(now) {
		s.shake.Intensity = 0
	}

	s.handleInput(now, in)
	s.advance(now)
	s.prune()

	if e := s.spawner.NextEnemy(now, s.tracker.Level()); e != nil {
		s.enemies = append(s.enemies, e)
	}

	s.resolveCollisions()
	s.updateDifficulty()
	s.prune()
}

// updateDifficulty reconciles the tracker with the score and announces
// level changes.
func (s *Session) updateDifficulty() {
	prev := s.tracker.Level()
	m, changed := s.tracker.Update(s.score)
	if !changed {
		return
	}
	if m.Level > prev {
		s.audio.Play(fx.Play(fx.CueLevelUp))
	}
	s.logger.Debug("difficulty level", "level", m.Level, "scaling", m.Scaling, "score", s.score)
}

func (s *Session) handleInput(now time.Duration, in Input) {
	dx, dy := sanitizeAxis(in.MoveX), sanitizeAxis(in.MoveY)
	s.player.Move(dx, dy, s.bounds)
	s.player.Update()

	if in.SuperWeapon {
		s.activateSuperWeapon(now)
	}

	if !s.autoFire && !in.Fire {
		return
	}
	volley := s.player.Shoot(now, s.bonuses.FireInterval(), s.bonuses.MultiShot())
	if len(volley) > 0 {
		s.bullets = append(s.bullets, volley...)
		s.audio.Play(fx.Play(fx.CueShoot))
	}
}

// sanitizeAxis clamps an input axis to [-1,1]; non-finite input is ignored.
func sanitizeAxis(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return physics.Clamp(v, -1, 1)
}

// advance moves every entity one tick.
func (s *Session) advance(now time.Duration) {
	for i := range s.bullets {
		s.bullets[i].Update()
	}

	px, py := s.player.X, s.player.Y
	for _, e := range s.enemies {
		e.Update(px, py, s.bounds)
		if volley := e.Shoot(now, px, py, s.rng); len(volley) > 0 {
			s.bullets = append(s.bullets, volley...)
			s.audio.Play(fx.Play(fx.CueEnemyShoot))
		}
	}

	for i := range s.particles {
		s.particles[i].Update()
	}
	for i := range s.shockwaves {
		s.shockwaves[i].Update()
	}
	s.shake.update(s.rng)

	for _, b := range s.pickups {
		b.Update(now, px, py)
		if b.Touches(px, py, s.player.Size) {
			s.collectBonus(b, now)
		}
	}
}

// prune drops dead and off-screen entities and enforces the particle cap,
// discarding the oldest particles first.
func (s *Session) prune() {
	enemies := s.enemies[:0]
	for _, e := range s.enemies {
		if !e.IsDestroyed() && !e.IsOffScreen(s.bounds) {
			enemies = append(enemies, e)
		}
	}
	clear(s.enemies[len(enemies):])
	s.enemies = enemies

	bullets := s.bullets[:0]
	for _, b := range s.bullets {
		if !b.IsDestroyed() && !b.IsOffScreen(s.bounds) {
			bullets = append(bullets, b)
		}
	}
	s.bullets = bullets

	particles := s.particles[:0]
	for _, p := range s.particles {
		if !p.IsDead() {
			particles = append(particles, p)
		}
	}
	if excess := len(particles) - config.MaxParticles; excess > 0 {
		n := copy(particles, particles[excess:])
		particles = particles[:n]
	}
	s.particles = particles

	waves := s.shockwaves[:0]
	for _, w := range s.shockwaves {
		if !w.IsDead() {
			waves = append(waves, w)
		}
	}
	s.shockwaves = waves

	pickups := s.pickups[:0]
	for _, b := range s.pickups {
		if !b.Collected && !b.IsExpired(s.now, s.bounds) {
			pickups = append(pickups, b)
		}
	}
	clear(s.pickups[len(pickups):])
	s.pickups = pickups
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.audio.Play(fx.Play(fx.CueGameOver))
	s.logger.Debug("game over", "score", s.score, "level", s.tracker.Level(), "ticks", s.ticks)
}
