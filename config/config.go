// Package config loads the runtime settings from an optional .env file, the
// environment and command line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"tile-snake/game/types"
	"tile-snake/stats"
)

type Config struct {
	GridSize     int           `validate:"min=10,max=256"` // the initial snake reaches x=10
	TickInterval time.Duration `validate:"min=1ms"`
	StrictTurns  bool
	Headless     bool
	Seed         uint64
	Addr         string // HTTP control surface, disabled when empty
	StatsPath    string // run history file, in memory when empty
	CellSize     int    `validate:"min=4,max=128"`
	LogLevel     string `validate:"oneof=trace debug info warn error fatal panic disabled"`
}

func Default() Config {
	return Config{
		GridSize:     types.DefaultGridSize,
		TickInterval: types.DefaultTickInterval,
		StatsPath:    stats.DefaultStatsFile,
		CellSize:     32,
		LogLevel:     "info",
	}
}

var validate = validator.New()

// Load builds the configuration for the given command line arguments
// (without the program name).
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("tile-snake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.GridSize, "grid", cfg.GridSize, "Tiles per side of the map")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Time between two moves")
	fs.BoolVar(&cfg.StrictTurns, "strict", cfg.StrictTurns, "Refuse turning back into the snake")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window, driven by the autopilot")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Autopilot seed (0 = time based)")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address, empty to disable")
	fs.StringVar(&cfg.StatsPath, "stats", cfg.StatsPath, "Run history file, empty to keep it in memory")
	fs.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "Tile size in pixels")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s=%v (%s %s): %w", fe.Field(), fe.Value(), fe.Tag(), fe.Param(), err)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SNAKE_GRID_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SNAKE_GRID_SIZE: %w", err)
		}
		c.GridSize = n
	}
	if v := os.Getenv("SNAKE_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SNAKE_TICK: %w", err)
		}
		c.TickInterval = d
	}
	if v := os.Getenv("SNAKE_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SNAKE_STRICT: %w", err)
		}
		c.StrictTurns = b
	}
	if v := os.Getenv("SNAKE_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SNAKE_HEADLESS: %w", err)
		}
		c.Headless = b
	}
	if v := os.Getenv("SNAKE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SNAKE_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := os.Getenv("SNAKE_CELL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SNAKE_CELL: %w", err)
		}
		c.CellSize = n
	}
	if v, ok := os.LookupEnv("SNAKE_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("SNAKE_STATS"); ok {
		c.StatsPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}
