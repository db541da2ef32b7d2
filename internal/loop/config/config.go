// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - logical units. Rendering scales to fit the terminal.
const (
	CanvasWidth  = 1200
	CanvasHeight = 700
)

// Player
const (
	PlayerSpeed          = 5.0 // Units per tick at full deflection
	PlayerSize           = 20.0
	PlayerBoundsMargin   = 1.5 // Clamp margin in multiples of size
	PlayerBulletSpeed    = 7.0
	PlayerStartOffsetY   = 100.0 // Distance from the bottom edge at session start
	InitialHealth        = 3
	DefaultFireInterval  = 150 * time.Millisecond
	RapidFireInterval    = 75 * time.Millisecond
	MultiShotSpreadSpeed = 1.0 // Horizontal speed of the outer multi-shot bullets
)

// Enemies
const (
	EnemyBulletSpeed     = 5.0
	EnemyFireIntervalMin = 1000 * time.Millisecond
	EnemyFireIntervalMax = 3000 * time.Millisecond
	EnemySpawnMarginX    = 50.0
	EnemySpawnY          = -30.0
	EnemyOffScreenMargin = 50.0
	SpreadShotChance     = 0.4
)

// Bullets
const (
	BulletRadius          = 4.0
	BulletTrailLength     = 8
	BulletOffScreenMargin = 20.0
)

// Spawning
const (
	InitialSpawnRate           = 2000 * time.Millisecond
	MinSpawnRate               = 400 * time.Millisecond
	DifficultyIncreaseInterval = 50000 * time.Millisecond
	SpawnRateStep              = 200 * time.Millisecond
	BonusSpawnChance           = 0.35
)

// Bonuses
const (
	BonusLifetime         = 8000 * time.Millisecond
	BonusSize             = 20.0
	BonusFallSpeed        = 1.0
	BonusAttractionRadius = 150.0
	BonusAttractionSpeed  = 1.5
	BonusFadeStart        = 0.7 // Fraction of lifetime before fading begins

	ShieldDuration     = 15000 * time.Millisecond
	RapidFireDuration  = 10000 * time.Millisecond
	MultiShotDuration  = 10000 * time.Millisecond
	MultiplierDuration = 15000 * time.Millisecond
)

// Super weapon
const (
	SuperWeaponThreshold      = 650
	SuperWeaponDuration       = 1000 * time.Millisecond
	SuperWeaponShake          = 0.3
	SuperWeaponFlashParticles = 50
	SuperWeaponBlastSpeed     = 15.0
	SuperWeaponBlastDecay     = 0.02
)

// Effects
const (
	MaxParticles          = 800
	ExplosionBaseCount    = 15
	ExplosionFlashCount   = 10
	HitSparkCount         = 5
	DamageSparkCount      = 10
	ShieldBreakCount      = 20
	BonusPickupCount      = 15
	ShockwaveMaxRadius    = 80.0
	ShockwaveSpeed        = 4.0
	ShockwaveDecay        = 0.03
	ShakeDecay            = 0.9
	ShakeAmplitude        = 20.0
	ShakeBigEnemy         = 0.15
	ShakeDamage           = 0.25
	BigEnemySize          = 25.0
	ExplosionSizeDivisor  = 20.0 // Enemy size / divisor = explosion cue size factor
	BodyCollisionCueSize  = 1.5
	ShakeEpsilon          = 0.001
	ParticleShrink        = 0.96
	DebrisGravity         = 0.1
	ParticleDecayMin      = 0.015
	ParticleDecayMax      = 0.035
	ParticleSpeedRange    = 4.0
	ParticleSizeMin       = 2.0
	ParticleSizeMax       = 8.0
	ParticleRotationRange = 0.1
)

// Progressive difficulty curve
const (
	TotalLevels    = 100
	BaseScaling    = 1.0
	MaxScaling     = 5.5
	CurveBase      = 50.0
	CurveGrowth    = 1.08
	DisplayBuckets = 10
)

// Host tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Terminal rendering
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityDisconnectUser = 300 // Seconds
	InactivityWarnBefore     = 30  // Seconds before disconnect the warning shows
)

// Shutdown
const (
	ShutdownDisplay = 5 * time.Second // Shutdown notice shown before auto-disconnect
)

// Screens
const (
	GameOverRestartDelay = time.Second // Restart is ignored for this long after game over
	PromptBlinkPeriod    = 600 * time.Millisecond
	ShieldBlinkWindow    = 3 * time.Second // Shield ring blinks when less than this remains
	ShieldBlinkFrequency = 8.0
)
