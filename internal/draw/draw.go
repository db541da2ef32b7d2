package draw

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is a 24-bit RGB color in 0xRRGGBB form.
type Color uint32

// RGB returns the color channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// Scale multiplies every channel by f in [0,1], fading the color toward black.
func (c Color) Scale(f float64) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	r, g, b := c.RGB()
	return RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

// Lerp blends c toward o by t in [0,1].
func (c Color) Lerp(o Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	r1, g1, b1 := c.RGB()
	r2, g2, b2 := o.RGB()
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return RGB(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

// RGB builds a color from channels.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Screen holds terminal dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// TerminalSize returns the terminal width and height of stdout.
func TerminalSize() (Screen, error) {
	width, height, err := DefaultTermSizeFunc()
	if err != nil {
		return Screen{}, err
	}
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
