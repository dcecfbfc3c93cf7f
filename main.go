package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tile-snake/agent"
	"tile-snake/config"
	"tile-snake/game"
	"tile-snake/server"
	"tile-snake/stats"
	"tile-snake/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	st, err := stats.NewStats(cfg.StatsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load run history")
	}

	opts := game.DefaultOptions()
	opts.GridSize = cfg.GridSize
	opts.StrictTurns = cfg.StrictTurns
	g := game.NewGame(opts)
	sched := game.NewScheduler(g, cfg.TickInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Addr != "" {
		srv := server.New(sched)
		go func() {
			if err := srv.Serve(ctx, cfg.Addr); err != nil {
				log.Error().Err(err).Msg("http server exited")
				stop()
			}
		}()
	}

	log.Info().
		Str("game", g.UUID).
		Int("grid", cfg.GridSize).
		Dur("tick", cfg.TickInterval).
		Bool("strict", cfg.StrictTurns).
		Bool("headless", cfg.Headless).
		Msg("starting")

	if cfg.Headless {
		runHeadless(ctx, cfg, sched, st)
	} else {
		runWindow(ctx, cfg, sched, st)
	}
	sched.Stop()
}

// runHeadless lets the autopilot play run after run until ctx is cancelled.
func runHeadless(ctx context.Context, cfg config.Config, sched *game.Scheduler, st *stats.Stats) {
	g := sched.Game()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	pilot := agent.NewAutopilot(g.Grid, seed)

	snaps, unsubscribe := sched.Subscribe()
	defer unsubscribe()
	go func() {
		for snap := range snaps {
			if !snap.GameOver {
				g.SetHeadingFor(snap.UUID, pilot.Decide(snap.Segments, snap.Heading))
			}
		}
	}()

	first := g.Snapshot()
	g.SetHeading(pilot.Decide(first.Segments, first.Heading))
	sched.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sched.Done():
		}
		if !g.IsOver() {
			return
		}
		recordRun(g, st)
		sched.Restart(ctx)
	}
}

func runWindow(ctx context.Context, cfg config.Config, sched *game.Scheduler, st *stats.Stats) {
	g := sched.Game()
	renderer := ui.NewRenderer(cfg.CellSize, cfg.GridSize)
	width, height := renderer.WindowSize()

	rl.InitWindow(width, height, "Tile Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	sched.Start(ctx)
	recorded := false

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil || rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		if dir, ok := ui.PollHeading(); ok {
			g.SetHeading(dir)
		}

		if g.IsOver() {
			if !recorded {
				recordRun(g, st)
				recorded = true
			}
			if rl.IsKeyPressed(rl.KeySpace) {
				sched.Restart(ctx)
				recorded = false
			}
		}

		renderer.Draw(g.Snapshot(), st)
	}
}

func recordRun(g *game.Game, st *stats.Stats) {
	res := g.Result()
	st.AddRun(res)
	if err := st.SaveToFile(); err != nil {
		log.Error().Err(err).Msg("failed to save run history")
	}
	wall, self := st.GetCauseCounts()
	log.Info().
		Str("game", res.UUID).
		Int("ticks", res.Ticks).
		Dur("duration", res.Duration).
		Str("cause", res.Cause.String()).
		Int("runs", st.GetRunsPlayed()).
		Int("wall", wall).
		Int("self", self).
		Msg("run recorded")
}
