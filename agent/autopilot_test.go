package agent

import (
	"testing"

	"tile-snake/game"
	"tile-snake/game/types"
)

func TestAutopilotAvoidsWall(t *testing.T) {
	grid := types.NewGrid(types.DefaultGridSize)
	a := NewAutopilot(grid, 1)
	a.TurnChance = 0

	segments := []types.Point{{X: 15, Y: 9}, {X: 16, Y: 9}, {X: 17, Y: 9}}
	for i := 0; i < 20; i++ {
		dir := a.Decide(segments, types.Right)
		if dir != types.Up && dir != types.Down {
			t.Fatalf("expected a turn away from the wall, got %v", dir)
		}
	}
}

func TestAutopilotKeepsStraightWhenNotTurning(t *testing.T) {
	a := NewAutopilot(types.NewGrid(types.DefaultGridSize), 7)
	a.TurnChance = 0
	for i := 0; i < 20; i++ {
		if got := a.Decide(types.InitialSegments(), types.Right); got != types.Right {
			t.Fatalf("expected straight, got %v", got)
		}
	}
}

func TestAutopilotAlwaysTurnsWhenAsked(t *testing.T) {
	a := NewAutopilot(types.NewGrid(types.DefaultGridSize), 3)
	a.TurnChance = 1
	seen := map[types.Direction]bool{}
	for i := 0; i < 50; i++ {
		got := a.Decide(types.InitialSegments(), types.Right)
		if got != types.Up && got != types.Down {
			t.Fatalf("expected a turn, got %v", got)
		}
		seen[got] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both turns over 50 draws, got %v", seen)
	}
}

func TestAutopilotTrappedKeepsHeading(t *testing.T) {
	a := NewAutopilot(types.NewGrid(3), 1)
	// Corner at (3,3) heading right: right and up are walls, down is the body.
	segments := []types.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}}
	if got := a.Decide(segments, types.Right); got != types.Right {
		t.Fatalf("expected current heading, got %v", got)
	}
}

func TestAutopilotSurvivesLonger(t *testing.T) {
	g := game.NewGame(game.DefaultOptions())
	a := NewAutopilot(g.Grid, 42)
	for i := 0; i < 200 && !g.IsOver(); i++ {
		snap := g.Snapshot()
		g.SetHeading(a.Decide(snap.Segments, snap.Heading))
		g.Update()
	}
	// A straight run hits the wall after 8 ticks; a four segment snake
	// with lookahead cannot trap itself on an open 17x17 map.
	if g.IsOver() {
		t.Fatalf("autopilot died after %d ticks: %v", g.Result().Ticks, g.Cause())
	}
}
