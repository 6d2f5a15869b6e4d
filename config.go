package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/spotdemo4/matrix-terminal/internal/fx"
	"github.com/spotdemo4/matrix-terminal/internal/tui"
	"github.com/spotdemo4/matrix-terminal/internal/typing"
)

type config struct {
	Banner             string        `env:"MT_BANNER"               envDefault:"Wake up, Neo... The Matrix has you."`
	TypingSpeed        time.Duration `env:"MT_TYPING_SPEED"         envDefault:"50ms"`
	StartDelay         time.Duration `env:"MT_START_DELAY"          envDefault:"500ms"`
	ErrorProbability   float64       `env:"MT_ERROR_PROBABILITY"    envDefault:"0.05"`
	Loop               bool          `env:"MT_LOOP"                 envDefault:"true"`
	PauseBeforeRestart time.Duration `env:"MT_PAUSE_BEFORE_RESTART" envDefault:"2s"`
	Cursor             string        `env:"MT_CURSOR"               envDefault:"block"`

	TypeOutput  bool          `env:"MT_TYPE_OUTPUT"  envDefault:"true"`
	OutputSpeed time.Duration `env:"MT_OUTPUT_SPEED" envDefault:"10ms"`

	GlitchIntensity string        `env:"MT_GLITCH_INTENSITY" envDefault:"medium"`
	GlitchInterval  time.Duration `env:"MT_GLITCH_INTERVAL"  envDefault:"2s"`

	Rain     bool `env:"MT_RAIN"      envDefault:"true"`
	RainRows int  `env:"MT_RAIN_ROWS" envDefault:"6"`

	Seed     uint64 `env:"MT_SEED"`
	DebugLog string `env:"MT_DEBUG_LOG"`
}

const envFile = "matrix-terminal.env"

func getConfig() (c config, err error) {
	// Get .env file
	configDir, err := os.UserConfigDir()
	if err != nil {
		tui.PrintWarn("warning: could not get config dir: %v", err)
	} else {
		err := godotenv.Load(filepath.Join(configDir, envFile))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			tui.PrintWarn("warning: could not load %s: %v", filepath.Join(configDir, envFile), err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	return c, c.validate()
}

func (c config) validate() error {
	var errs []error

	if c.TypingSpeed <= 0 {
		errs = append(errs, fmt.Errorf("'MT_TYPING_SPEED' must be positive, got %s", c.TypingSpeed))
	}
	if c.OutputSpeed <= 0 {
		errs = append(errs, fmt.Errorf("'MT_OUTPUT_SPEED' must be positive, got %s", c.OutputSpeed))
	}
	if c.ErrorProbability < 0 || c.ErrorProbability > 1 {
		errs = append(errs, fmt.Errorf("'MT_ERROR_PROBABILITY' must be between 0 and 1, got %v", c.ErrorProbability))
	}
	if c.StartDelay < 0 || c.PauseBeforeRestart < 0 {
		errs = append(errs, errors.New("'MT_START_DELAY' and 'MT_PAUSE_BEFORE_RESTART' cannot be negative"))
	}
	if _, ok := typing.ParseCursorStyle(c.Cursor); !ok {
		errs = append(errs, fmt.Errorf("'MT_CURSOR' must be one of block, underscore, pipe, got %q", c.Cursor))
	}
	if _, ok := fx.ParseIntensity(c.GlitchIntensity); !ok {
		errs = append(errs, fmt.Errorf("'MT_GLITCH_INTENSITY' must be one of low, medium, high, got %q", c.GlitchIntensity))
	}
	if c.RainRows < 0 {
		errs = append(errs, fmt.Errorf("'MT_RAIN_ROWS' cannot be negative, got %d", c.RainRows))
	}

	return errors.Join(errs...)
}

// options turns a validated config into the terminal UI options.
func (c config) options(version string) tui.Options {
	cursor, _ := typing.ParseCursorStyle(c.Cursor)
	intensity, _ := fx.ParseIntensity(c.GlitchIntensity)

	return tui.Options{
		Version: version,
		Banner:  c.Banner,
		Typing: typing.Options{
			TypingSpeed:        c.TypingSpeed,
			StartDelay:         c.StartDelay,
			ErrorProbability:   c.ErrorProbability,
			Loop:               c.Loop,
			PauseBeforeRestart: c.PauseBeforeRestart,
			Cursor:             cursor,
		},
		TypeOutput:  c.TypeOutput,
		OutputSpeed: c.OutputSpeed,
		Glitch: fx.GlitchOptions{
			Intensity: intensity,
			Interval:  c.GlitchInterval,
		},
		Rain:     c.Rain,
		RainRows: c.RainRows,
		Seed:     c.Seed,
	}
}
