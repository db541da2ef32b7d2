package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// pixelSet marks a written pixel so that black stays distinguishable from empty.
const pixelSet = 1 << 24

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Every sub-pixel carries its own color; a cell with two differently colored
// halves is rendered as an upper half-block with foreground and background set.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], 0 if unset

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	profile termenv.Profile
	fgSeq   map[Color]string
	bgSeq   map[Color]string

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas for the given terminal dimensions.
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
		profile:        termenv.TrueColor,
		fgSeq:          make(map[Color]string),
		bgSeq:          make(map[Color]string),
	}
}

// SetProfile selects the terminal color profile used by Render. Colors are
// degraded to the nearest color the profile supports.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p == c.profile {
		return
	}
	c.profile = p
	clear(c.fgSeq)
	clear(c.bgSeq)
}

// Profile returns the color profile.
func (c *Canvas) Profile() termenv.Profile {
	return c.profile
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col&0xFFFFFF | pixelSet
	}
}

// Pixel returns the color at actual terminal coordinates and whether it is set.
func (c *Canvas) Pixel(x, y int) (Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0, false
	}
	v := c.pixels[y*c.termWidth+x]
	return v &^ pixelSet, v != 0
}

// Set sets a pixel using logical coordinates (applies scaling).
func (c *Canvas) Set(x, y float64, col Color) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	if !finite(p1) || !finite(p2) {
		return
	}
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// DrawCircle draws a circle of logical radius r. Because the axes scale
// independently the circle is traced as an ellipse in pixel space.
func (c *Canvas) DrawCircle(cx, cy, r float64, col Color, filled bool) {
	if r <= 0 || math.IsNaN(r) {
		return
	}
	rx := r * c.scaleX
	ry := r * c.scaleY
	pcx := cx * c.scaleX
	pcy := cy * c.scaleY

	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(pcx)), int(math.Round(pcy)), col)
		return
	}

	if filled {
		yStart := int(math.Ceil(pcy - ry))
		yEnd := int(math.Floor(pcy + ry))
		for y := yStart; y <= yEnd; y++ {
			dy := (float64(y) - pcy) / ry
			half := rx * math.Sqrt(math.Max(0, 1-dy*dy))
			for x := int(math.Ceil(pcx - half)); x <= int(math.Floor(pcx+half)); x++ {
				c.setPixel(x, y, col)
			}
		}
		return
	}

	// Step along the circumference finely enough to leave no gaps.
	steps := int(math.Ceil(2*math.Pi*math.Max(rx, ry))) + 4
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.setPixel(int(math.Round(pcx+rx*math.Cos(a))), int(math.Round(pcy+ry*math.Sin(a))), col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// noStyle is a sentinel distinct from every stored pixel value.
const noStyle Color = 0

// Render outputs the canvas to the writer using colored half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16)

	fg, bg := noStyle, noStyle
	styled := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		lastCol := -2

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top == 0 && bottom == 0 {
				continue
			}

			if col != lastCol+1 {
				writeCursor(&c.renderBuf, row+1+c.offsetRow, col+1+c.offsetCol)
			}
			lastCol = col

			var ch rune
			wantFG, wantBG := top, noStyle
			switch {
			case top != 0 && top == bottom:
				ch = BlockFull
			case top != 0 && bottom != 0:
				ch = BlockUpperHalf
				wantBG = bottom
			case top != 0:
				ch = BlockUpperHalf
			default:
				ch = BlockLowerHalf
				wantFG = bottom
			}

			if wantFG != fg {
				c.renderBuf.WriteString(c.sequence(wantFG, false))
				fg = wantFG
				styled = true
			}
			if wantBG != bg {
				if wantBG == noStyle {
					c.renderBuf.WriteString(termenv.CSI + "49m")
				} else {
					c.renderBuf.WriteString(c.sequence(wantBG, true))
				}
				bg = wantBG
				styled = true
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if styled {
		c.renderBuf.WriteString(termenv.CSI + "0m")
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// sequence returns the escape sequence selecting a stored pixel color,
// cached per profile.
func (c *Canvas) sequence(v Color, background bool) string {
	cache := c.fgSeq
	if background {
		cache = c.bgSeq
	}
	if s, ok := cache[v]; ok {
		return s
	}
	s := ""
	if seq := c.profile.Color((v &^ pixelSet).Hex()).Sequence(background); seq != "" {
		s = termenv.CSI + seq + "m"
	}
	cache[v] = s
	return s
}

func writeCursor(sb *strings.Builder, row, col int) {
	var num [20]byte
	sb.WriteString("\033[")
	sb.Write(strconv.AppendInt(num[:0], int64(row), 10))
	sb.WriteByte(';')
	sb.Write(strconv.AppendInt(num[:0], int64(col), 10))
	sb.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			writeCursor(&buf, top, left)
			buf.WriteString("┌" + line + "┐")
			writeCursor(&buf, bottom, left)
			buf.WriteString("└" + line + "┘")
		} else {
			writeCursor(&buf, top, c.offsetCol+1)
			buf.WriteString(line)
			writeCursor(&buf, bottom, c.offsetCol+1)
			buf.WriteString(line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			writeCursor(&buf, row, left)
			buf.WriteString("│")
			writeCursor(&buf, row, right)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
