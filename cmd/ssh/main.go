package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
	loopconfig "github.com/tomz197/starfall/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// host runs one isolated game per SSH session and tracks them for shutdown.
type host struct {
	settings config.Settings
	logger   *log.Logger
	shutdown context.Context
	sessions sync.WaitGroup
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall-ssh",
	})

	settings, err := config.LoadSettings()
	if err != nil {
		logger.Warn("invalid settings, using defaults", "error", err)
	}
	logger.SetLevel(settings.LogLevel)

	hostAddr := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "error", workErr)
	}
	logger.Info("SSH config",
		"host", hostAddr,
		"port", port,
		"hostKeyPath", hostKeyPath,
		"workingDir", workingDir,
		"difficulty", settings.Difficulty.Name,
		"inactivity", settings.Inactivity,
	)

	shutdownCtx, beginShutdown := context.WithCancel(context.Background())
	defer beginShutdown()
	h := &host{settings: settings, logger: logger, shutdown: shutdownCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(hostAddr, port)),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(hostAddr, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "error", err)
		}
	}()

	<-done
	logger.Info("shutting down server, notifying connected players")

	// Show every player the shutdown notice, then wait for the sessions to end
	beginShutdown()
	h.waitSessions(loopconfig.ShutdownDisplay + 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "error", err)
	}
}

// waitSessions blocks until every game session has ended or timeout passes.
func (h *host) waitSessions(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		h.logger.Info("all sessions ended")
	case <-time.After(timeout):
		h.logger.Warn("sessions still open after shutdown notice", "timeout", timeout)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func (h *host) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		h.sessions.Add(1)
		defer h.sessions.Done()

		logger := h.logger.With("user", sess.User())
		profile := draw.ProfileFor(pty.Term, lookupEnv(sess.Environ(), "COLORTERM"))
		logger.Info("new game session",
			"terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
			"profile", profile,
		)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// The game ends with the connection or with the server shutdown.
		ctx, cancel := context.WithCancelCause(sess.Context())
		defer cancel(nil)
		stop := context.AfterFunc(h.shutdown, func() { cancel(loop.ErrShutdown) })
		defer stop()

		// Sound stays on the server's machine, so SSH players get none.
		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc:  sizeTracker.getSize,
			Profile:       profile,
			Settings:      h.settings,
			Logger:        h.logger,
			Username:      sess.User(),
			ShutdownGrace: loopconfig.ShutdownDisplay,
		})
		if err != nil {
			logger.Error("game error", "error", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// lookupEnv finds key in a KEY=VALUE list.
func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
