package object

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
)

// ParticleKind selects particle physics and rendering.
type ParticleKind int

const (
	ParticleNormal ParticleKind = iota
	ParticleGlow                // Drawn with a bright halo
	ParticleDebris              // Falls under gravity and spins
)

// Flash colors.
const (
	White draw.Color = 0xFFFFFF
	Gold  draw.Color = 0xFFD700
)

// Particle is a short-lived visual effect. Particles are plain values kept in
// a slice so a frame snapshot can copy them without aliasing.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Color    draw.Color
	Kind     ParticleKind
	Life     float64 // 1 at spawn, dead at 0
	Decay    float64 // Life lost per tick
	Angle    float64
	Rotation float64 // Angle change per tick
	Gravity  float64
}

// NewParticle creates a particle with randomized size, velocity and decay.
func NewParticle(x, y float64, color draw.Color, kind ParticleKind, rng Random) Particle {
	p := Particle{
		X:        x,
		Y:        y,
		VX:       randomRange(rng, -config.ParticleSpeedRange, config.ParticleSpeedRange),
		VY:       randomRange(rng, -config.ParticleSpeedRange, config.ParticleSpeedRange),
		Size:     randomRange(rng, config.ParticleSizeMin, config.ParticleSizeMax),
		Color:    color,
		Kind:     kind,
		Life:     1,
		Decay:    randomRange(rng, config.ParticleDecayMin, config.ParticleDecayMax),
		Rotation: randomRange(rng, -config.ParticleRotationRange, config.ParticleRotationRange),
	}
	if kind == ParticleDebris {
		p.Gravity = config.DebrisGravity
	}
	return p
}

// Update advances the particle one tick.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity
	p.Life -= p.Decay
	p.Size *= config.ParticleShrink
	p.Angle += p.Rotation
}

// IsDead reports whether the particle has faded out.
func (p *Particle) IsDead() bool {
	return p.Life <= 0
}

// Shockwave is an expanding ring.
type Shockwave struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Speed     float64 // Radius growth per tick
	Decay     float64 // Life lost per tick
	Life      float64
	Color     draw.Color
}

// NewShockwave creates the ring that accompanies an explosion.
func NewShockwave(x, y float64, color draw.Color) Shockwave {
	return Shockwave{
		X:         x,
		Y:         y,
		MaxRadius: config.ShockwaveMaxRadius,
		Speed:     config.ShockwaveSpeed,
		Decay:     config.ShockwaveDecay,
		Life:      1,
		Color:     color,
	}
}

// NewBlast creates the screen-filling ring of the super weapon.
func NewBlast(x, y float64, b Bounds) Shockwave {
	return Shockwave{
		X:         x,
		Y:         y,
		MaxRadius: math.Max(b.Width, b.Height) * 1.5,
		Speed:     config.SuperWeaponBlastSpeed,
		Decay:     config.SuperWeaponBlastDecay,
		Life:      1,
		Color:     Gold,
	}
}

// Update grows the ring one tick.
func (s *Shockwave) Update() {
	s.Radius += s.Speed
	s.Life -= s.Decay
}

// IsDead reports whether the ring has faded or reached full size.
func (s *Shockwave) IsDead() bool {
	return s.Life <= 0 || s.Radius >= s.MaxRadius
}

// AppendBurst appends count particles of one kind at a point.
func AppendBurst(dst []Particle, x, y float64, count int, color draw.Color, kind ParticleKind, rng Random) []Particle {
	for i := 0; i < count; i++ {
		dst = append(dst, NewParticle(x, y, color, kind, rng))
	}
	return dst
}

// AppendExplosion appends the particles of an enemy explosion: a glow burst
// scaled by size, half as much debris, and a white flash.
func AppendExplosion(dst []Particle, x, y, size float64, color draw.Color, rng Random) []Particle {
	count := int(size/2) + config.ExplosionBaseCount
	dst = AppendBurst(dst, x, y, count, color, ParticleGlow, rng)
	dst = AppendBurst(dst, x, y, (count+1)/2, color, ParticleDebris, rng)
	return AppendBurst(dst, x, y, config.ExplosionFlashCount, White, ParticleGlow, rng)
}
