package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/difficulty"
	loopconfig "github.com/tomz197/starfall/internal/loop/config"
)

// Environment variables read by LoadSettings.
const (
	EnvDifficulty = "STARFALL_DIFFICULTY"
	EnvAutoFire   = "STARFALL_AUTOFIRE"
	EnvSound      = "STARFALL_SOUND"
	EnvHaptics    = "STARFALL_HAPTICS"
	EnvLogLevel   = "STARFALL_LOG_LEVEL"
	EnvInactivity = "STARFALL_INACTIVITY"
)

// Settings are the player-facing options shared by every host.
type Settings struct {
	Difficulty difficulty.Preset
	AutoFire   bool
	Sound      bool
	Haptics    bool
	LogLevel   log.Level

	// Inactivity disconnects an idle player after this long. Zero disables it.
	Inactivity time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Difficulty: difficulty.Normal,
		AutoFire:   true,
		Sound:      true,
		Haptics:    true,
		LogLevel:   log.InfoLevel,
		Inactivity: loopconfig.InactivityDisconnectUser * time.Second,
	}
}

// LoadSettings reads Settings from STARFALL_* environment variables on top of
// DefaultSettings. Every malformed variable is reported; fields that failed
// to parse keep their default.
func LoadSettings() (Settings, error) {
	s := DefaultSettings()
	var errs []error

	if name := GetEnv(EnvDifficulty, ""); name != "" {
		p, err := difficulty.ParsePreset(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvDifficulty, err))
		} else {
			s.Difficulty = p
		}
	}

	var err error
	if s.AutoFire, err = GetEnvBool(EnvAutoFire, s.AutoFire); err != nil {
		errs = append(errs, err)
	}
	if s.Sound, err = GetEnvBool(EnvSound, s.Sound); err != nil {
		errs = append(errs, err)
	}
	if s.Haptics, err = GetEnvBool(EnvHaptics, s.Haptics); err != nil {
		errs = append(errs, err)
	}
	if s.Inactivity, err = GetEnvDuration(EnvInactivity, s.Inactivity); err != nil {
		errs = append(errs, err)
	}

	if lvl := GetEnv(EnvLogLevel, ""); lvl != "" {
		l, err := log.ParseLevel(lvl)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			s.LogLevel = l
		}
	}

	return s, errors.Join(errs...)
}
