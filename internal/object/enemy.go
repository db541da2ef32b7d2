package object

import (
	"math"
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

// EnemyKind identifies one of the fixed enemy archetypes.
type EnemyKind int

const (
	ScoutDrone EnemyKind = iota
	FighterWasp
	HeavyCruiser
	BehemothDreadnought
	AlienLeviathan
	VoidEntity
	EliteGuardian
	SwarmCommander

	enemyKindCount
)

// MovePattern selects how an enemy moves each tick.
type MovePattern int

const (
	MoveStraight MovePattern = iota // Straight down at full speed
	MoveSine                        // Downward drift with horizontal oscillation
	MoveSeek                        // Home in on the player at half speed
)

// ProjectileShape selects how enemy bullets are drawn.
type ProjectileShape int

const (
	ProjectileOrb ProjectileShape = iota
	ProjectileBolt
	ProjectilePlasma
	ProjectileRing
)

// EnemySpec is the static configuration of an enemy kind.
type EnemySpec struct {
	Name        string
	BaseHealth  int
	Speed       float64
	Size        float64
	Points      int
	Color       draw.Color
	SpawnWeight float64
	MinLevel    int
	MaxLevel    int
}

var enemySpecs = [enemyKindCount]EnemySpec{
	ScoutDrone:          {"scout_drone", 2, 4, 14, 10, 0x00FFFF, 1.0, 1, 15},
	FighterWasp:         {"fighter_wasp", 3, 3.5, 18, 25, 0xFF6600, 0.8, 11, 30},
	HeavyCruiser:        {"heavy_cruiser", 5, 2.5, 28, 50, 0x9900FF, 0.6, 21, 50},
	BehemothDreadnought: {"behemoth_dreadnought", 10, 2, 40, 100, 0xCC00FF, 0.3, 40, 70},
	AlienLeviathan:      {"alien_leviathan", 15, 1.5, 50, 200, 0xFF00AA, 0.2, 60, 85},
	VoidEntity:          {"void_entity", 20, 1, 60, 300, 0xFF0066, 0.15, 75, 100},
	EliteGuardian:       {"elite_guardian", 8, 3, 32, 150, 0xCCCCFF, 0.25, 70, 100},
	SwarmCommander:      {"swarm_commander", 8, 2.5, 35, 120, 0xFFDD00, 0.3, 50, 100},
}

// EnemyKinds returns every kind in table order.
func EnemyKinds() []EnemyKind {
	kinds := make([]EnemyKind, enemyKindCount)
	for i := range kinds {
		kinds[i] = EnemyKind(i)
	}
	return kinds
}

// Valid reports whether k names a known kind.
func (k EnemyKind) Valid() bool {
	return k >= 0 && k < enemyKindCount
}

// Spec returns the static configuration of k. Unknown kinds fall back to
// the scout drone.
func (k EnemyKind) Spec() EnemySpec {
	if !k.Valid() {
		return enemySpecs[ScoutDrone]
	}
	return enemySpecs[k]
}

func (k EnemyKind) String() string {
	return k.Spec().Name
}

// EligibleAt reports whether k may spawn at the given difficulty level.
func (k EnemyKind) EligibleAt(level int) bool {
	s := k.Spec()
	return level >= s.MinLevel && level <= s.MaxLevel
}

// MovePattern picks the movement behavior for a newly spawned enemy.
// Fighters and cruisers alternate randomly between straight and sine runs.
func (k EnemyKind) MovePattern(rng Random) MovePattern {
	switch k {
	case ScoutDrone, SwarmCommander:
		return MoveSine
	case BehemothDreadnought, AlienLeviathan, VoidEntity:
		return MoveSeek
	default:
		if rng.Float64() < 0.5 {
			return MoveStraight
		}
		return MoveSine
	}
}

// ProjectileShape returns how bullets fired by k are drawn.
func (k EnemyKind) ProjectileShape() ProjectileShape {
	switch k {
	case FighterWasp, EliteGuardian:
		return ProjectileBolt
	case HeavyCruiser, BehemothDreadnought, SwarmCommander:
		return ProjectilePlasma
	case AlienLeviathan, VoidEntity:
		return ProjectileRing
	default:
		return ProjectileOrb
	}
}

// FiresSpread reports whether k can fire the two-bullet spread volley.
func (k EnemyKind) FiresSpread() bool {
	return k == FighterWasp
}

// Enemy is a hostile ship descending through the playfield.
type Enemy struct {
	X, Y         float64
	Kind         EnemyKind
	Size         float64
	Speed        float64
	Color        draw.Color
	Points       int
	Health       int
	MaxHealth    int
	Pattern      MovePattern
	Angle        float64       // Oscillation phase
	FireInterval time.Duration // Time between volleys
	LastFire     time.Duration
	Destroyed    bool
	fired        bool
}

// NewEnemy creates an enemy of the given kind. Health and points are scaled by
// the difficulty preset multipliers and rounded up.
func NewEnemy(x, y float64, kind EnemyKind, healthMult, scoreMult float64, rng Random) *Enemy {
	spec := kind.Spec()
	health := ceilScaled(spec.BaseHealth, healthMult)
	if health < 1 {
		health = 1
	}
	points := ceilScaled(spec.Points, scoreMult)
	if points < 0 {
		points = 0
	}

	return &Enemy{
		X:            x,
		Y:            y,
		Kind:         kind,
		Size:         spec.Size,
		Speed:        spec.Speed,
		Color:        spec.Color,
		Points:       points,
		Health:       health,
		MaxHealth:    health,
		Pattern:      kind.MovePattern(rng),
		Angle:        rng.Float64() * 2 * math.Pi,
		FireInterval: randomDuration(rng, config.EnemyFireIntervalMin, config.EnemyFireIntervalMax),
	}
}

// Update moves the enemy according to its pattern. Horizontal position is
// kept inside the playfield.
func (e *Enemy) Update(playerX, playerY float64, b Bounds) {
	e.Angle += 0.02

	switch e.Pattern {
	case MoveSine:
		e.Y += e.Speed * 0.8
		e.X += math.Sin(e.Angle*2) * 2
	case MoveSeek:
		if nx, ny, _, ok := physics.Direction(e.X, e.Y, playerX, playerY); ok {
			e.X += nx * e.Speed * 0.5
			e.Y += ny * e.Speed * 0.5
		}
	default:
		e.Y += e.Speed
	}

	e.X = physics.Clamp(e.X, e.Size, b.Width-e.Size)
}

// Shoot fires at the target if the enemy's fire interval has elapsed.
// A coincident target resets the timer without firing.
func (e *Enemy) Shoot(now time.Duration, targetX, targetY float64, rng Random) []Bullet {
	if e.fired && now-e.LastFire < e.FireInterval {
		return nil
	}
	e.LastFire = now
	e.fired = true

	nx, ny, _, ok := physics.Direction(e.X, e.Y, targetX, targetY)
	if !ok {
		return nil
	}
	vx := nx * config.EnemyBulletSpeed * 0.7
	vy := ny * config.EnemyBulletSpeed
	muzzleY := e.Y + e.Size

	if e.Kind.FiresSpread() && rng.Float64() < config.SpreadShotChance {
		return []Bullet{
			NewEnemyBullet(e.X-8, muzzleY, vx-1, vy, e.Kind),
			NewEnemyBullet(e.X+8, muzzleY, vx+1, vy, e.Kind),
		}
	}
	return []Bullet{NewEnemyBullet(e.X, muzzleY, vx, vy, e.Kind)}
}

// Hit applies one point of damage. Returns true if the enemy is destroyed.
func (e *Enemy) Hit() bool {
	e.Health--
	if e.Health <= 0 {
		e.Destroyed = true
	}
	return e.Destroyed
}

// IsOffScreen reports whether the enemy has left through the bottom edge.
func (e *Enemy) IsOffScreen(b Bounds) bool {
	return e.Y > b.Height+config.EnemyOffScreenMargin
}

// IsDestroyed reports whether the enemy should be removed.
func (e *Enemy) IsDestroyed() bool {
	return e.Destroyed
}
