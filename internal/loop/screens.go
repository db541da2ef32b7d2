package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/render"
)

// Text colors.
const (
	colorTitle    draw.Color = 0xFFD700
	colorText     draw.Color = 0xE0E0E0
	colorDim      draw.Color = 0x808080
	colorPrompt   draw.Color = 0x00CCFF
	colorWarning  draw.Color = 0xFF4500
	colorSelected draw.Color = 0x00FF66
	colorStar     draw.Color = 0x9090B0
)

var titleArt = []string{
	`  ___ _____ _   ___ ___ _   _    _     `,
	` / __|_   _/_\ | _ \ __/_\ | |  | |    `,
	` \__ \ | |/ _ \|   / _/ _ \| |__| |__  `,
	` |___/ |_/_/ \_\_|_\_/_/ \_\____|____| `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame. The terminal is cleared inside the
// same flush so a frame never shows half drawn.
func (c *Client) drawFrame() error {
	cw := c.chunkWriter
	draw.ClearScreen(cw)

	c.canvas.Clear()
	world := c.state.Screen != ScreenStart
	if world {
		c.session.SnapshotInto(&c.snap)
		render.World(c.canvas, &c.snap)
	} else {
		c.drawStars()
	}

	// Render canvas to terminal
	c.canvas.Render(cw)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(cw)

	if world {
		render.PickupIcons(cw, c.canvas, &c.snap)
	}

	// Draw UI overlay
	c.drawUI()

	if c.haptics.take() {
		draw.Bell(cw)
	}

	return cw.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenStart:
		c.drawStartScreen(centerX, centerY)
	case ScreenPlaying:
		render.HUD(c.chunkWriter, c.session.HUD(), termWidth)
	case ScreenPaused:
		render.HUD(c.chunkWriter, c.session.HUD(), termWidth)
		c.drawPausedScreen(centerX, centerY)
	case ScreenGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// blinkOn alternates every PromptBlinkPeriod.
func (c *Client) blinkOn() bool {
	return c.state.now.UnixMilli()/config.PromptBlinkPeriod.Milliseconds()%2 == 0
}

// centered writes s centered on column centerX.
func (c *Client) centered(centerX, row int, s string, col draw.Color, bold bool) {
	c.chunkWriter.WriteStyled(centerX-len([]rune(s))/2, row, s, col, bold)
}

func (c *Client) drawArt(centerX, startY int, art []string, col draw.Color) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteStyled(centerX-width/2, startY+i, line, col, true)
	}
}

// drawStars scatters a slowly falling star field behind the title.
func (c *Client) drawStars() {
	w, h := c.canvas.LogicalWidth(), c.canvas.LogicalHeight()
	drift := float64(c.state.now.UnixMilli()%3_600_000) / 1000 * 40
	for i := 0; i < 60; i++ {
		// Fixed pseudo-random layout from a multiplicative hash.
		x := float64((i*7919)%997) / 997 * w
		y := math.Mod(float64((i*104729)%991)/991*h+drift*float64(1+i%3), h)
		c.canvas.Set(x, y, colorStar.Scale(0.4+0.2*float64(i%4)))
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 9
	c.drawArt(centerX, titleStartY, titleArt, colorTitle)

	row := titleStartY + len(titleArt) + 1
	c.centered(centerX, row, "~ Hold the line against the falling fleet ~", colorText, false)

	row += 2
	c.centered(centerX, row, "Controls", colorText, true)
	controlLines := []string{
		"WASD / Arrows  . . . .  Move",
		"SPACE  . . . . . . . .  Fire",
		"E  . . . . . .  Super weapon",
		"P  . . . . . . . . . . Pause",
		"Q  . . . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, row+1+i, line, colorText, false)
	}
	row += len(controlLines) + 2
	if c.settings.AutoFire {
		c.centered(centerX, row, "(auto-fire is on)", colorDim, false)
	}

	row += 2
	c.drawPresetPicker(centerX, row)

	// Blinking start prompt
	if c.blinkOn() {
		c.centered(centerX, row+2, ">>  Press ENTER to Start  <<", colorPrompt, true)
	}
}

// drawPresetPicker lists the difficulty presets and highlights the selected one.
func (c *Client) drawPresetPicker(centerX, row int) {
	presets := difficulty.Presets()
	labels := make([]string, len(presets))
	width := 0
	for i, p := range presets {
		labels[i] = fmt.Sprintf("[%d] %s", i+1, p.Name)
		width += len(labels[i]) + 2
	}
	col := centerX - width/2
	for i, p := range presets {
		fg, bold := colorDim, false
		if p.Name == c.state.Preset.Name {
			fg, bold = colorSelected, true
		}
		c.chunkWriter.WriteStyled(col, row, labels[i], fg, bold)
		col += len(labels[i]) + 2
	}
}

// drawPausedScreen draws the pause overlay.
func (c *Client) drawPausedScreen(centerX, centerY int) {
	c.centered(centerX, centerY-1, "PAUSED", colorTitle, true)
	c.centered(centerX, centerY+1, "P to resume  /  Q to quit", colorText, false)
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	hud := c.session.HUD()

	titleStartY := centerY - 6
	c.drawArt(centerX, titleStartY, gameOverArt, colorWarning)

	row := titleStartY + len(gameOverArt) + 1
	c.centered(centerX, row, fmt.Sprintf("Score: %d", hud.Score), colorTitle, true)
	c.centered(centerX, row+1, fmt.Sprintf("Level %d (%s)  /  %s", hud.Level, hud.Label, hud.Difficulty), colorText, false)

	row += 3
	c.drawPresetPicker(centerX, row)

	if c.state.now.Sub(c.state.gameOverAt) >= config.GameOverRestartDelay && c.blinkOn() {
		c.centered(centerX, row+2, ">>  Press ENTER to Play Again  <<", colorPrompt, true)
	}
	c.centered(centerX, row+4, "Q to quit", colorDim, false)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING", colorWarning, true)

	left := c.settings.Inactivity - c.state.now.Sub(c.lastInput)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", int(max(left, 0).Seconds()))
	c.centered(centerX, centerY, msg, colorText, false)

	c.centered(centerX, centerY+2, "Press any key to continue", colorDim, false)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN", colorWarning, true)
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.", colorText, false)
	c.centered(centerX, centerY, "Please reconnect in a moment.", colorText, false)

	remaining := int(c.state.shutdownAt.Sub(c.state.now).Seconds()) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), colorText, false)
	c.centered(centerX, centerY+4, "Press Q to disconnect now", colorDim, false)
}
