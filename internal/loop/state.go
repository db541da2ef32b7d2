package loop

import (
	"time"

	"github.com/tomz197/starfall/internal/difficulty"
	"github.com/tomz197/starfall/internal/input"
)

// Screen is what the host is currently showing.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
	ScreenShutdown
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game over"
	case ScreenShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-connection host state.
type ClientState struct {
	Screen  Screen
	Running bool
	Input   input.Input
	Preset  difficulty.Preset // Difficulty used by the next game

	now        time.Time // Real time of the current frame
	gameOverAt time.Time
	shutdownAt time.Time
	isInactive bool
}

// NewClientState creates the state for a fresh connection.
func NewClientState(preset difficulty.Preset) *ClientState {
	return &ClientState{
		Screen:  ScreenStart,
		Running: true,
		Preset:  preset,
	}
}
