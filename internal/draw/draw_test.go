package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestColorScaleAndLerp(t *testing.T) {
	c := Color(0x804020)
	if got := c.Scale(0.5); got != 0x402010 {
		t.Errorf("Scale(0.5) = %06x", uint32(got))
	}
	if c.Scale(2) != c || c.Scale(-1) != 0 {
		t.Error("Scale does not clamp")
	}
	if got := Color(0x000000).Lerp(0xFFFFFF, 1); got != 0xFFFFFF {
		t.Errorf("Lerp(1) = %06x", uint32(got))
	}
	if got := Color(0x32B8C6).Hex(); got != "#32b8c6" {
		t.Errorf("Hex = %q", got)
	}
}

func TestCanvasBlackIsNotEmpty(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 1, 0x000000)
	if col, ok := c.Pixel(1, 1); !ok || col != 0 {
		t.Errorf("pixel = %06x,%v", uint32(col), ok)
	}
	if _, ok := c.Pixel(2, 2); ok {
		t.Error("unset pixel reported as set")
	}
	c.Clear()
	if _, ok := c.Pixel(1, 1); ok {
		t.Error("Clear left a pixel")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom bool
		topColor    Color
		bottomColor Color
		want        string
		wantBG      bool
	}{
		{"full", true, true, 0xFF0000, 0xFF0000, "█", false},
		{"upper", true, false, 0xFF0000, 0, "▀", false},
		{"lower", false, true, 0, 0x00FF00, "▄", false},
		{"two colors", true, true, 0xFF0000, 0x00FF00, "▀", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(1, 1)
			if tt.top {
				c.Set(0, 0, tt.topColor)
			}
			if tt.bottom {
				c.Set(0, 1, tt.bottomColor)
			}
			var buf bytes.Buffer
			c.Render(&buf)
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q lacks %q", out, tt.want)
			}
			if hasBG := strings.Contains(out, "48;2;"); hasBG != tt.wantBG {
				t.Errorf("background sequence = %v, want %v in %q", hasBG, tt.wantBG, out)
			}
		})
	}
}

func TestRenderAsciiProfileHasNoColor(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetProfile(termenv.Ascii)
	c.Set(0, 0, 0xFF0000)
	var buf bytes.Buffer
	c.Render(&buf)
	if strings.Contains(buf.String(), "38;") {
		t.Errorf("ascii output has color: %q", buf.String())
	}
}

func TestDrawCircleFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(10, 10, 4, 0xFFFFFF, true)
	if _, ok := c.Pixel(10, 10); !ok {
		t.Error("center not filled")
	}
	if _, ok := c.Pixel(10, 15); ok {
		t.Error("pixel outside radius set")
	}
	if _, ok := c.Pixel(13, 10); !ok {
		t.Error("pixel inside radius not set")
	}
}

func TestDrawLineIgnoresNonFinite(t *testing.T) {
	c := NewCanvas(4, 4)
	inf := Point{X: math.Inf(1), Y: 0}
	c.DrawLine(Point{}, inf, 0xFFFFFF)
	if _, ok := c.Pixel(0, 0); ok {
		t.Error("drew a line to infinity")
	}
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		term, colorTerm string
		want            termenv.Profile
	}{
		{"xterm-256color", "truecolor", termenv.TrueColor},
		{"xterm-256color", "", termenv.ANSI256},
		{"xterm", "", termenv.ANSI},
		{"dumb", "", termenv.Ascii},
	}
	for _, tt := range tests {
		if got := ProfileFor(tt.term, tt.colorTerm); got != tt.want {
			t.Errorf("ProfileFor(%q,%q) = %v, want %v", tt.term, tt.colorTerm, got, tt.want)
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "x")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[4;3Hx" {
		t.Errorf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after flush")
	}
}
