package render

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/session"
)

func canvasPixels(c *draw.Canvas) int {
	n := 0
	for y := 0; y < c.TerminalHeight()*2; y++ {
		for x := 0; x < c.TerminalWidth(); x++ {
			if _, ok := c.Pixel(x, y); ok {
				n++
			}
		}
	}
	return n
}

func TestWorldDrawsPlayer(t *testing.T) {
	s := session.New(session.Options{Rand: rand.New(rand.NewSource(1))})
	s.Start(difficulty.Normal, 0)
	snap := s.Snapshot()

	c := draw.NewScaledCanvas(120, 35, snap.Bounds.Width, snap.Bounds.Height)
	World(c, &snap)

	px := int(math.Round(snap.Player.X * 120 / snap.Bounds.Width))
	py := int(math.Round(snap.Player.Y * 70 / snap.Bounds.Height))
	if col, ok := c.Pixel(px, py); !ok || col != object.PlayerColor {
		t.Errorf("pixel at ship = %06x,%v", uint32(col), ok)
	}
}

func TestWorldSkipsNonFinite(t *testing.T) {
	snap := session.Snapshot{
		Phase:  session.PhaseGameOver,
		Bounds: object.Bounds{Width: 100, Height: 100},
		Enemies: []object.Enemy{
			{X: math.NaN(), Y: 10, Size: 10, Color: 0xFF0000},
		},
		Particles: []object.Particle{
			{X: math.Inf(1), Y: 0, Life: 1, Size: 4},
		},
	}
	c := draw.NewCanvas(50, 25)
	World(c, &snap)
	if n := canvasPixels(c); n != 0 {
		t.Errorf("%d pixels drawn for non-finite entities", n)
	}
}

func TestWorldCullsFarEntities(t *testing.T) {
	snap := session.Snapshot{
		Phase:   session.PhaseGameOver,
		Bounds:  object.Bounds{Width: 100, Height: 100},
		Enemies: []object.Enemy{{X: 50, Y: 1e6, Size: 10, Color: 0xFF0000, MaxHealth: 1, Health: 1}},
	}
	c := draw.NewCanvas(50, 25)
	World(c, &snap)
	if n := canvasPixels(c); n != 0 {
		t.Errorf("%d pixels drawn for a culled enemy", n)
	}
}

func TestSuperBar(t *testing.T) {
	tests := []struct {
		frac float64
		full int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		bar := SuperBar(tt.frac, 10)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("SuperBar(%v) = %q, %d full cells, want %d", tt.frac, bar, got, tt.full)
		}
	}
}

func TestHUDWritesScore(t *testing.T) {
	var out bytes.Buffer
	cw := draw.NewChunkWriter(&out, 0, 0)
	HUD(cw, session.HUD{Score: 1234, Health: 2, MaxHealth: 3, Level: 4, Label: "+5%", Bucket: 1, Difficulty: "normal"}, 100)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"SCORE 1234", "♥♥♡", "LV 4 +5% [normal]"} {
		if !strings.Contains(got, want) {
			t.Errorf("HUD output lacks %q", want)
		}
	}
}
