package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, settingsErr := config.LoadSettings()

	// The terminal belongs to the game while it runs, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("STARFALL_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall",
		Level:           settings.LogLevel,
	})
	if settingsErr != nil {
		fmt.Fprintf(os.Stderr, "ignoring invalid settings: %v\n", settingsErr)
		logger.Warn("invalid settings", "error", settingsErr)
	}

	opts := loop.Options{
		Settings: settings,
		Logger:   logger,
		Profile:  termenv.EnvColorProfile(),
	}
	if settings.Sound {
		player := audio.NewPlayer(logger)
		if err := player.Initialize(); err == nil {
			defer player.Close()
			opts.Audio = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, opts)
}
