package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/session"
)

const (
	colorText  draw.Color = 0xE0E0E0
	colorScore draw.Color = 0xFFD700
	colorReady draw.Color = 0xFF4500
)

// superBarWidth is the number of cells in the super weapon charge bar.
const superBarWidth = 20

// HUD writes the status lines at the top of the canvas area.
func HUD(cw *draw.ChunkWriter, h session.HUD, termWidth int) {
	cw.WriteStyled(2, 1, fmt.Sprintf("SCORE %d", h.Score), colorScore, true)

	hearts := strings.Repeat("♥", max(h.Health, 0)) + strings.Repeat("♡", max(h.MaxHealth-h.Health, 0))
	cw.WriteStyled(16, 1, hearts, colorHurt, false)

	level := fmt.Sprintf("LV %d %s [%s]", h.Level, h.Label, h.Difficulty)
	cw.WriteStyled(termWidth-len(level)-1, 1, level, difficultyColor(h.Bucket), false)

	cw.WriteStyled(2, 2, "SUPER "+SuperBar(h.Charge, superBarWidth), superColor(h), false)
	switch {
	case h.SuperActive:
		cw.WriteStyled(30, 2, "ACTIVE", colorReady, true)
	case h.SuperReady:
		cw.WriteStyled(30, 2, "READY [E]", colorReady, true)
	}

	col := 42
	for _, b := range h.Bonuses {
		label := fmt.Sprintf("%c %ds", b.Type.Icon(), b.Seconds)
		cw.WriteStyled(col, 2, label, b.Type.Color(), false)
		col += len(label) + 2
	}
}

// SuperBar renders a charge fraction as a fixed-width bar.
func SuperBar(frac float64, width int) string {
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

func superColor(h session.HUD) draw.Color {
	if h.SuperReady || h.SuperActive {
		return colorReady
	}
	return colorText
}

// difficultyColor shades the level label from green to red over the
// display buckets.
func difficultyColor(bucket int) draw.Color {
	t := float64(bucket-1) / float64(config.DisplayBuckets-1)
	return draw.Color(0x00FF66).Lerp(0xFF3333, t)
}

// PickupIcons writes each pickup's icon over its canvas position.
func PickupIcons(cw *draw.ChunkWriter, c *draw.Canvas, snap *session.Snapshot) {
	for i := range snap.Pickups {
		b := &snap.Pickups[i]
		if b.Collected || !object.Finite(b.X, b.Y) {
			continue
		}
		col, row := c.LogicalToTerminal(b.X+snap.Shake.X, b.Y+snap.Shake.Y)
		if col < 1 || row < 1 || col > c.TerminalWidth() || row > c.TerminalHeight() {
			continue
		}
		cw.WriteStyled(col, row, string(b.Type.Icon()), b.Type.Color().Scale(b.Life), true)
	}
}
