// Package loop hosts a single-player game on a terminal: it reads keys,
// ticks the session at a fixed rate and draws every frame.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/fx"
	"github.com/tomz197/starfall/internal/object"
)

// ErrShutdown is the cancel cause hosts use when the server is going down.
// Only this cause shows the shutdown notice; any other cancellation stops
// the game at once.
var ErrShutdown = errors.New("server shutting down")

// Options configures a terminal host.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile // Zero value is TrueColor
	Settings     config.Settings
	Audio        fx.AudioSink // Nil plays nothing
	Logger       *log.Logger
	Username     string
	Rand         object.Random

	// ShutdownGrace is how long the shutdown notice stays up once the
	// context is canceled with ErrShutdown. Zero exits at once.
	ShutdownGrace time.Duration
}

// Run plays on the terminal behind r and w until the player quits, the
// input stream ends or ctx is canceled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run(ctx)
}
