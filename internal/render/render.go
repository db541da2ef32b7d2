// Package render draws session snapshots onto the half-block canvas.
// It only reads snapshots; nothing here mutates game state.
package render

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/session"
)

// cullMargin is how far outside the playfield an entity may be and still be drawn.
const cullMargin = 60.0

const (
	colorShield draw.Color = 0x00AAFF
	colorEngine draw.Color = 0xFF8C00
	colorHealth draw.Color = 0x00FF66
	colorHurt   draw.Color = 0xFF3333
)

// World draws every entity of snap onto c. The canvas is not cleared.
func World(c *draw.Canvas, snap *session.Snapshot) {
	v := view{c: c, dx: snap.Shake.X, dy: snap.Shake.Y, bounds: snap.Bounds}

	for i := range snap.Shockwaves {
		v.shockwave(&snap.Shockwaves[i])
	}
	for i := range snap.Pickups {
		v.pickup(&snap.Pickups[i])
	}
	for i := range snap.Enemies {
		v.enemy(&snap.Enemies[i])
	}
	for i := range snap.Bullets {
		v.bullet(&snap.Bullets[i])
	}
	if snap.Phase != session.PhaseGameOver {
		shield := snap.Shield && (snap.ShieldLeft > config.ShieldBlinkWindow ||
			object.ShouldRenderBlink(snap.ShieldLeft, config.ShieldBlinkFrequency))
		v.player(&snap.Player, shield)
	}
	for i := range snap.Particles {
		v.particle(&snap.Particles[i])
	}
}

// view applies the shake offset and culls off-screen entities.
type view struct {
	c      *draw.Canvas
	dx, dy float64
	bounds object.Bounds
}

func (v view) visible(x, y, r float64) bool {
	if !object.Finite(x, y) {
		return false
	}
	m := cullMargin + r
	return x >= -m && x <= v.bounds.Width+m && y >= -m && y <= v.bounds.Height+m
}

func (v view) pt(x, y float64) draw.Point {
	return draw.Point{X: x + v.dx, Y: y + v.dy}
}

// polygon draws a regular n-gon of radius r rotated by angle.
func (v view) polygon(x, y, r float64, n int, angle float64, col draw.Color, filled bool) {
	pts := v.c.BorrowPoints(n)
	for i := range pts {
		a := angle + 2*math.Pi*float64(i)/float64(n)
		pts[i] = v.pt(x+r*math.Cos(a), y+r*math.Sin(a))
	}
	v.c.DrawPolygon(pts, col, filled)
}

func (v view) circle(x, y, r float64, col draw.Color, filled bool) {
	v.c.DrawCircle(x+v.dx, y+v.dy, r, col, filled)
}

func (v view) player(p *object.Player, shield bool) {
	if !v.visible(p.X, p.Y, p.Size) {
		return
	}
	s := p.Size
	pts := v.c.BorrowPoints(4)
	pts[0] = v.pt(p.X, p.Y-s)
	pts[1] = v.pt(p.X+s*0.8, p.Y+s*0.7)
	pts[2] = v.pt(p.X, p.Y+s*0.3)
	pts[3] = v.pt(p.X-s*0.8, p.Y+s*0.7)
	v.c.DrawPolygon(pts, object.PlayerColor, true)

	flame := 0.6 + 0.4*math.Abs(math.Sin(p.Pulse*3))
	v.circle(p.X, p.Y+s*0.7, s*0.25*flame, colorEngine, true)

	if shield {
		glow := 0.7 + 0.3*math.Sin(p.Pulse*2)
		v.circle(p.X, p.Y, s*1.5, colorShield.Scale(glow), false)
	}
}

func (v view) enemy(e *object.Enemy) {
	if e.Destroyed || !v.visible(e.X, e.Y, e.Size) {
		return
	}
	r := e.Size
	// Hulls point down, toward the player.
	down := math.Pi / 2

	switch e.Kind {
	case object.ScoutDrone:
		v.polygon(e.X, e.Y, r*0.8, 4, down, e.Color, true)
	case object.FighterWasp:
		v.polygon(e.X, e.Y, r*0.9, 3, down, e.Color, true)
	case object.HeavyCruiser:
		v.polygon(e.X, e.Y, r*0.85, 6, 0, e.Color, true)
	case object.BehemothDreadnought:
		v.polygon(e.X, e.Y, r*0.9, 8, math.Pi/8, e.Color, true)
		v.polygon(e.X, e.Y, r*0.5, 8, math.Pi/8, e.Color.Scale(0.5), true)
	case object.AlienLeviathan:
		v.circle(e.X, e.Y, r*0.8, e.Color, true)
		v.circle(e.X, e.Y, r*0.95, e.Color.Scale(0.6), false)
	case object.VoidEntity:
		pulse := 0.85 + 0.15*math.Sin(e.Angle*4)
		v.circle(e.X, e.Y, r*0.6*pulse, e.Color, true)
		v.circle(e.X, e.Y, r*0.9*pulse, e.Color.Scale(0.7), false)
	case object.EliteGuardian:
		v.star(e.X, e.Y, r*0.9, r*0.45, 5, e.Color)
	case object.SwarmCommander:
		v.polygon(e.X, e.Y, r*0.85, 5, down, e.Color, true)
	default:
		v.circle(e.X, e.Y, r*0.8, e.Color, true)
	}

	if e.MaxHealth > 1 && e.Health < e.MaxHealth {
		v.healthBar(e)
	}
}

func (v view) star(x, y, outer, inner float64, points int, col draw.Color) {
	pts := v.c.BorrowPoints(points * 2)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi/2 + math.Pi*float64(i)/float64(points)
		pts[i] = v.pt(x+r*math.Cos(a), y+r*math.Sin(a))
	}
	v.c.DrawPolygon(pts, col, true)
}

func (v view) healthBar(e *object.Enemy) {
	w := e.Size * 1.6
	y := e.Y - e.Size - 6
	left := e.X - w/2
	frac := float64(e.Health) / float64(e.MaxHealth)
	v.c.DrawLine(v.pt(left, y), v.pt(left+w, y), colorHurt)
	if frac > 0 {
		v.c.DrawLine(v.pt(left, y), v.pt(left+w*frac, y), colorHealth)
	}
}

func (v view) bullet(b *object.Bullet) {
	if b.Consumed || !v.visible(b.X, b.Y, b.Radius) {
		return
	}
	for i := 0; i < b.Trail.Len(); i++ {
		tp := b.Trail.At(i)
		v.c.Set(tp.X+v.dx, tp.Y+v.dy, b.Color.Scale(tp.Life*0.6))
	}

	if b.Owner == object.OwnerPlayer {
		v.circle(b.X, b.Y, b.Radius, b.Color, true)
		return
	}

	switch b.Kind.ProjectileShape() {
	case object.ProjectileBolt:
		nx, ny := b.VX, b.VY
		if l := math.Hypot(nx, ny); l > 0 {
			nx, ny = nx/l, ny/l
		}
		l := b.Radius * 2.5
		v.c.DrawLine(v.pt(b.X-nx*l, b.Y-ny*l), v.pt(b.X+nx*l, b.Y+ny*l), b.Color)
	case object.ProjectilePlasma:
		glow := 1 + 0.2*math.Sin(b.Pulse)
		v.circle(b.X, b.Y, b.Radius*1.4*glow, b.Color.Scale(0.6), true)
		v.circle(b.X, b.Y, b.Radius*0.8, draw.Color(0xFFFFFF), true)
	case object.ProjectileRing:
		v.circle(b.X, b.Y, b.Radius*1.5, b.Color, false)
	default:
		v.circle(b.X, b.Y, b.Radius, b.Color, true)
	}
}

func (v view) particle(p *object.Particle) {
	if p.IsDead() || !v.visible(p.X, p.Y, p.Size) {
		return
	}
	col := p.Color.Scale(p.Life)
	switch p.Kind {
	case object.ParticleGlow:
		v.circle(p.X, p.Y, p.Size*0.5, col, true)
	case object.ParticleDebris:
		h := p.Size * 0.5
		c, s := math.Cos(p.Angle)*h, math.Sin(p.Angle)*h
		v.c.DrawLine(v.pt(p.X-c, p.Y-s), v.pt(p.X+c, p.Y+s), col)
	default:
		v.c.Set(p.X+v.dx, p.Y+v.dy, col)
	}
}

func (v view) shockwave(s *object.Shockwave) {
	if s.IsDead() || !object.Finite(s.X, s.Y) {
		return
	}
	v.circle(s.X, s.Y, s.Radius, s.Color.Scale(s.Life), false)
}

func (v view) pickup(b *object.BonusPickup) {
	if b.Collected || !v.visible(b.X, b.Y, b.Size) {
		return
	}
	pulse := 0.8 + 0.2*math.Sin(b.Pulse*2)
	col := b.Type.Color().Scale(b.Life * pulse)
	v.circle(b.X, b.Y, b.Size*0.6, col, false)
	v.polygon(b.X, b.Y, b.Size*0.35, 4, b.Pulse, col, true)
}
