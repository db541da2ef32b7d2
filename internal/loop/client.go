package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/clock"
	appconfig "github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/session"
)

// Fallback terminal size when the size query fails.
const (
	defaultTermWidth  = 80
	defaultTermHeight = 24
)

// Client handles rendering and input for a single connection.
type Client struct {
	state        *ClientState
	session      *session.Session
	clock        *clock.Clock
	snap         session.Snapshot
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	haptics      *bellHaptics
	settings     appconfig.Settings
	logger       *log.Logger
	username     string
	termSizeFunc draw.TermSizeFunc
	grace        time.Duration
	now          func() time.Time
	lastInput    time.Time
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}
	preset := opts.Settings.Difficulty
	if preset.Name == "" {
		preset = difficulty.Normal
	}

	haptics := &bellHaptics{}
	var hapticSink fx.HapticSink = fx.Nop{}
	if opts.Settings.Haptics {
		hapticSink = haptics
	}

	sess := session.New(session.Options{
		Rand:     opts.Rand,
		Audio:    opts.Audio,
		Haptics:  hapticSink,
		Logger:   logger,
		AutoFire: opts.Settings.AutoFire,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = defaultTermWidth, defaultTermHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.CanvasWidth, config.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetProfile(opts.Profile)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	chunkWriter.SetProfile(opts.Profile)

	now := time.Now
	return &Client{
		state:        NewClientState(preset),
		session:      sess,
		clock:        clock.NewWithSource(now),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		haptics:      haptics,
		settings:     opts.Settings,
		logger:       logger,
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		grace:        opts.ShutdownGrace,
		now:          now,
		lastInput:    now(),
	}
}

// Run starts the client loop. Blocks until the player quits or the
// shutdown notice has been shown.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	done := ctx.Done()
	for c.state.Running {
		select {
		case <-done:
			done = nil
			c.beginShutdown(c.now(), context.Cause(ctx))
			continue
		case <-ticker.C:
		}

		now := c.now()
		c.handle(now, input.ReadInputAt(c.inputStream, now))

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}

	c.session.End()
	draw.ClearScreen(c.writer)
	return nil
}

// handle advances the host by one frame with the given input.
func (c *Client) handle(now time.Time, in input.Input) {
	c.state.now = now
	c.state.Input = in
	c.processInput()

	// Handle screen resize
	c.updateScreen()

	switch c.state.Screen {
	case ScreenStart:
		c.updateStartState()
	case ScreenPlaying:
		c.updatePlayingState()
	case ScreenPaused:
		c.updatePausedState()
	case ScreenGameOver:
		c.updateGameOverState()
	case ScreenShutdown:
		c.updateShutdownState()
	}
}

// processInput tracks inactivity and quitting.
func (c *Client) processInput() {
	in := c.state.Input
	now := c.state.now

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if limit := c.settings.Inactivity; limit > 0 {
		idle := now.Sub(c.lastInput)
		warn := limit - min(config.InactivityWarnBefore*time.Second, limit/2)
		switch {
		case idle > limit:
			c.logger.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
			c.state.Running = false
		case idle > warn:
			c.state.isInactive = true
		}
	}

	if in.Quit {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// selectPreset switches the next game's difficulty from a digit key.
func (c *Client) selectPreset() {
	presets := difficulty.Presets()
	if n := c.state.Input.Number; n >= 1 && n <= len(presets) {
		c.state.Preset = presets[n-1]
	}
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	c.selectPreset()
	if c.state.Input.Enter || c.state.Input.Fire {
		c.startGame()
	}
}

// updatePlayingState ticks the session.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	if in.Pause {
		c.pause()
		return
	}

	c.session.Tick(c.clock.Elapsed(), session.Input{
		MoveX:       in.MoveX,
		MoveY:       in.MoveY,
		Fire:        in.Fire,
		SuperWeapon: in.Super,
	})

	if c.session.Phase() == session.PhaseGameOver {
		c.state.Screen = ScreenGameOver
		c.state.gameOverAt = c.state.now
		c.logger.Info("game over",
			"score", c.session.Score(),
			"difficulty", c.session.Preset().Name,
			"played", c.clock.Elapsed().Round(time.Second),
		)
	}
}

func (c *Client) pause() {
	if !c.session.Pause() {
		return
	}
	c.clock.Pause()
	c.inputStream.Reset()
	c.state.Screen = ScreenPaused
}

func (c *Client) resume() {
	c.clock.Resume()
	if c.session.Resume() {
		c.state.Screen = ScreenPlaying
	}
}

// updatePausedState waits for the pause key again.
func (c *Client) updatePausedState() {
	if c.state.Input.Pause || c.state.Input.Enter {
		c.resume()
	}
}

// updateGameOverState handles the game over screen.
func (c *Client) updateGameOverState() {
	c.selectPreset()
	if c.state.now.Sub(c.state.gameOverAt) < config.GameOverRestartDelay {
		return
	}
	if c.state.Input.Enter || c.state.Input.Fire {
		c.startGame()
	}
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	c.inputStream.Reset()
	c.clock.Reset()
	c.session.Start(c.state.Preset, c.clock.Elapsed())
	c.state.Screen = ScreenPlaying
	c.logger.Info("game started", "difficulty", c.state.Preset.Name)
}

// beginShutdown shows the shutdown notice, or stops at once when there is
// no grace period or the cancellation was not a server shutdown.
func (c *Client) beginShutdown(now time.Time, cause error) {
	if c.grace <= 0 || !errors.Is(cause, ErrShutdown) {
		c.state.Running = false
		return
	}
	c.pause()
	c.state.Screen = ScreenShutdown
	c.state.shutdownAt = now.Add(c.grace)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	if !c.state.now.Before(c.state.shutdownAt) {
		c.state.Running = false
	}
}
