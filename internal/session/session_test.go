package session

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

func newTestSession(t *testing.T) (*Session, *fx.Recorder) {
	t.Helper()
	rec := &fx.Recorder{}
	s := New(Options{
		Rand:    rand.New(rand.NewSource(1)),
		Audio:   rec,
		Haptics: rec,
	})
	s.Start(difficulty.Normal, 0)
	return s, rec
}

func countPlayerBullets(s *Session) int {
	n := 0
	for _, b := range s.bullets {
		if b.Owner == object.OwnerPlayer {
			n++
		}
	}
	return n
}

func TestLifecycle(t *testing.T) {
	s := New(Options{})
	if s.Phase() != PhaseIdle {
		t.Fatalf("new session phase = %v", s.Phase())
	}
	s.Tick(time.Second, Input{})
	if s.Ticks() != 0 {
		t.Error("idle session ticked")
	}

	s.Start(difficulty.Hard, 0)
	if s.Phase() != PhasePlaying || s.Preset().Name != difficulty.Hard.Name {
		t.Fatalf("after start: phase=%v preset=%q", s.Phase(), s.Preset().Name)
	}
	if s.Resume() {
		t.Error("resumed a running session")
	}
	if !s.Pause() || s.Pause() {
		t.Error("pause should succeed exactly once")
	}
	s.End()
	if s.Phase() != PhaseIdle {
		t.Errorf("after end phase = %v", s.Phase())
	}
}

func TestFirstTickSpawnsEnemy(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tick(0, Input{})
	if len(s.enemies) != 1 {
		t.Fatalf("enemies after first tick = %d, want 1", len(s.enemies))
	}
	if e := s.enemies[0]; e.Y != config.EnemySpawnY {
		t.Errorf("spawn y = %v", e.Y)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tick(0, Input{})
	y := s.enemies[0].Y
	ticks := s.Ticks()

	s.Pause()
	s.Tick(time.Second, Input{MoveX: 1})
	if s.Ticks() != ticks || s.enemies[0].Y != y {
		t.Error("paused session advanced")
	}

	s.Resume()
	s.Tick(config.TickTime, Input{})
	if s.Ticks() != ticks+1 {
		t.Errorf("ticks after resume = %d", s.Ticks())
	}
}

func TestFireInterval(t *testing.T) {
	s, rec := newTestSession(t)
	s.Tick(0, Input{Fire: true})
	if n := countPlayerBullets(s); n != 2 {
		t.Fatalf("bullets after first shot = %d, want 2", n)
	}
	s.Tick(100*time.Millisecond, Input{Fire: true})
	if n := countPlayerBullets(s); n != 2 {
		t.Errorf("fired inside the interval: %d bullets", n)
	}
	s.Tick(config.DefaultFireInterval, Input{Fire: true})
	if n := countPlayerBullets(s); n != 4 {
		t.Errorf("bullets after interval = %d, want 4", n)
	}
	if got := rec.Count(fx.CueShoot); got != 2 {
		t.Errorf("shoot cues = %d, want 2", got)
	}
}

func TestRapidFireAndMultiShot(t *testing.T) {
	s, _ := newTestSession(t)
	s.bonuses.Collect(object.BonusRapidFire, 0, s.player)
	s.bonuses.Collect(object.BonusMultiShot, 0, s.player)

	s.Tick(0, Input{Fire: true})
	s.Tick(config.RapidFireInterval, Input{Fire: true})
	if n := countPlayerBullets(s); n != 6 {
		t.Errorf("bullets = %d, want two three-bullet volleys", n)
	}
}

func TestAutoFire(t *testing.T) {
	s := New(Options{Rand: rand.New(rand.NewSource(1)), AutoFire: true})
	s.Start(difficulty.Normal, 0)
	s.Tick(0, Input{})
	if n := countPlayerBullets(s); n != 2 {
		t.Errorf("auto-fire bullets = %d, want 2", n)
	}
}

func TestNonFiniteInputIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	x := s.player.X
	nan := math.NaN()
	s.Tick(0, Input{MoveX: nan, MoveY: nan})
	if s.player.X != x || !object.Finite(s.player.X, s.player.Y) {
		t.Errorf("player moved to %v,%v", s.player.X, s.player.Y)
	}
}

func TestBulletHitsOneEnemy(t *testing.T) {
	s, rec := newTestSession(t)
	rng := rand.New(rand.NewSource(2))
	a := object.NewEnemy(300, 300, object.ScoutDrone, 1, 1, rng)
	b := object.NewEnemy(300, 300, object.ScoutDrone, 1, 1, rng)
	s.enemies = append(s.enemies, a, b)
	s.bullets = append(s.bullets, object.NewPlayerBullet(300, 300, 0, -7))

	s.resolvePlayerBullets()

	if a.Health != a.MaxHealth-1 || b.Health != b.MaxHealth {
		t.Errorf("health a=%d b=%d, want only the first enemy hit", a.Health, b.Health)
	}
	if !s.bullets[0].Consumed {
		t.Error("bullet not consumed")
	}
	if rec.Count(fx.CueHit) != 1 || s.Score() != 0 {
		t.Errorf("hit cues=%d score=%d", rec.Count(fx.CueHit), s.Score())
	}
}

func TestKillScoresWithMultiplier(t *testing.T) {
	s, rec := newTestSession(t)
	s.bonuses.Collect(object.BonusMultiplier, 0, s.player)
	e := object.NewEnemy(300, 300, object.ScoutDrone, 1, 1, rand.New(rand.NewSource(2)))
	e.Health = 1
	s.enemies = append(s.enemies, e)
	s.bullets = append(s.bullets, object.NewPlayerBullet(300, 300, 0, -7))

	s.resolvePlayerBullets()

	if !e.Destroyed {
		t.Fatal("enemy survived")
	}
	if s.Score() != 2*e.Points {
		t.Errorf("score = %d, want %d", s.Score(), 2*e.Points)
	}
	if s.super.Charge() != e.Points {
		t.Errorf("charge = %d, want plain points %d", s.super.Charge(), e.Points)
	}
	if rec.Count(fx.CueExplosion) != 1 || len(s.shockwaves) != 1 {
		t.Errorf("explosion cues=%d shockwaves=%d", rec.Count(fx.CueExplosion), len(s.shockwaves))
	}
}

func TestShieldAbsorbsOneHit(t *testing.T) {
	s, rec := newTestSession(t)
	p := s.player
	s.bonuses.Collect(object.BonusShield, 0, p)
	s.bullets = append(s.bullets,
		object.NewEnemyBullet(p.X, p.Y, 0, 0, object.ScoutDrone),
		object.NewEnemyBullet(p.X, p.Y, 0, 0, object.ScoutDrone),
	)

	s.resolveEnemyBullets()

	if p.Health != config.InitialHealth-1 {
		t.Errorf("health = %d, want one point lost", p.Health)
	}
	if s.bonuses.Active(object.BonusShield) {
		t.Error("shield still active")
	}
	if rec.Count(fx.CueDamage) != 2 {
		t.Errorf("damage cues = %d, want 2", rec.Count(fx.CueDamage))
	}
}

func TestBodyContact(t *testing.T) {
	s, _ := newTestSession(t)
	p := s.player
	e := object.NewEnemy(p.X, p.Y, object.HeavyCruiser, 1, 1, rand.New(rand.NewSource(2)))
	s.enemies = append(s.enemies, e)

	s.resolveCollisions()

	if !e.Destroyed || s.Score() != 0 {
		t.Errorf("destroyed=%v score=%d, want rammed enemy removed without score", e.Destroyed, s.Score())
	}
	if p.Health != config.InitialHealth-1 {
		t.Errorf("health = %d", p.Health)
	}
}

func TestGameOverStopsSimulation(t *testing.T) {
	s, rec := newTestSession(t)
	p := s.player
	p.Health = 1
	s.bullets = append(s.bullets, object.NewEnemyBullet(p.X, p.Y, 0, 0, object.ScoutDrone))

	s.Tick(config.TickTime, Input{})

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.Phase())
	}
	if rec.Count(fx.CueGameOver) != 1 {
		t.Errorf("game over cues = %d", rec.Count(fx.CueGameOver))
	}

	ticks, score := s.Ticks(), s.Score()
	s.Tick(time.Second, Input{Fire: true})
	if s.Ticks() != ticks || s.Score() != score || rec.Count(fx.CueGameOver) != 1 {
		t.Error("state changed after game over")
	}
}

func TestSuperWeaponWipe(t *testing.T) {
	s, rec := newTestSession(t)
	if s.ActivateSuperWeapon(0) {
		t.Fatal("activated without charge")
	}

	rng := rand.New(rand.NewSource(3))
	want := 0
	for i, k := range []object.EnemyKind{object.ScoutDrone, object.FighterWasp, object.HeavyCruiser} {
		e := object.NewEnemy(200+float64(i)*200, 100, k, 1, 1, rng)
		want += e.Points
		s.enemies = append(s.enemies, e)
	}
	s.super.AddCharge(config.SuperWeaponThreshold)

	if !s.ActivateSuperWeapon(time.Second) {
		t.Fatal("charged weapon did not fire")
	}
	if len(s.enemies) != 0 {
		t.Errorf("%d enemies survived", len(s.enemies))
	}
	if s.Score() != want {
		t.Errorf("score = %d, want %d", s.Score(), want)
	}
	if s.ActivateSuperWeapon(time.Second) {
		t.Error("second activation succeeded")
	}
	if rec.Count(fx.CueSuperWeapon) != 1 {
		t.Errorf("super weapon cues = %d", rec.Count(fx.CueSuperWeapon))
	}

	s.Tick(time.Second+config.SuperWeaponDuration, Input{})
	if s.super.Active() || s.shake.Intensity != 0 {
		t.Errorf("after deadline active=%v shake=%v", s.super.Active(), s.shake.Intensity)
	}
}

func TestLevelUpCue(t *testing.T) {
	s, rec := newTestSession(t)
	s.score = 10000
	s.Tick(0, Input{})
	if rec.Count(fx.CueLevelUp) != 1 {
		t.Errorf("level up cues = %d, want 1", rec.Count(fx.CueLevelUp))
	}
	if h := s.HUD(); h.Level <= 1 || h.Scaling <= config.BaseScaling {
		t.Errorf("HUD level=%d scaling=%v", h.Level, h.Scaling)
	}
}

func TestParticleCapDropsOldest(t *testing.T) {
	s, _ := newTestSession(t)
	for i := 0; i < config.MaxParticles+100; i++ {
		s.particles = append(s.particles, object.Particle{X: float64(i), Life: 1})
	}
	s.prune()
	if len(s.particles) != config.MaxParticles {
		t.Fatalf("particles = %d, want %d", len(s.particles), config.MaxParticles)
	}
	if s.particles[0].X != 100 {
		t.Errorf("oldest kept particle = %v, want 100", s.particles[0].X)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tick(0, Input{Fire: true})
	snap := s.Snapshot()
	if len(snap.Enemies) != 1 || len(snap.Bullets) == 0 {
		t.Fatalf("snapshot enemies=%d bullets=%d", len(snap.Enemies), len(snap.Bullets))
	}

	x := snap.Enemies[0].X
	s.enemies[0].X += 50
	s.bullets[0].X += 50
	if snap.Enemies[0].X != x || snap.Bullets[0].X == s.bullets[0].X {
		t.Error("snapshot aliases session state")
	}
}

func TestHUDBonusSeconds(t *testing.T) {
	s, _ := newTestSession(t)
	s.bonuses.Collect(object.BonusShield, 0, s.player)
	s.Tick(1500*time.Millisecond, Input{})

	h := s.HUD()
	if len(h.Bonuses) != 1 || h.Bonuses[0].Seconds != 14 {
		t.Fatalf("bonuses = %+v", h.Bonuses)
	}
	if h.Health != config.InitialHealth || h.MaxHealth != config.InitialHealth {
		t.Errorf("health %d/%d", h.Health, h.MaxHealth)
	}
}
