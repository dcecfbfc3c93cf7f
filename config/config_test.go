package config

import (
	"testing"
	"time"

	"tile-snake/stats"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridSize != 17 || cfg.TickInterval != 2*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.StatsPath != stats.DefaultStatsFile {
		t.Fatalf("unexpected stats path %q", cfg.StatsPath)
	}
	if cfg.StrictTurns || cfg.Headless {
		t.Fatal("strict turns and headless must be off by default")
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("SNAKE_GRID_SIZE", "20")
	t.Setenv("SNAKE_TICK", "250ms")
	t.Setenv("SNAKE_STRICT", "true")
	t.Setenv("SNAKE_ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-grid", "24", "-headless", "-seed", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridSize != 24 {
		t.Fatalf("flag should override env, got %d", cfg.GridSize)
	}
	if cfg.TickInterval != 250*time.Millisecond || !cfg.StrictTurns || cfg.Addr != ":9000" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.Headless || cfg.Seed != 99 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := [][]string{
		{"-grid", "5"},
		{"-tick", "0s"},
		{"-log-level", "loud"},
		{"-cell", "1"},
		{"-unknown"},
	}
	for _, args := range cases {
		if _, err := Load(args); err == nil {
			t.Errorf("Load(%v) should fail", args)
		}
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("SNAKE_TICK", "soon")
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for bad SNAKE_TICK")
	}
}

func TestEmptyStatsPathFromEnv(t *testing.T) {
	t.Setenv("SNAKE_STATS", "")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StatsPath != "" {
		t.Fatalf("expected in-memory stats, got %q", cfg.StatsPath)
	}
}
