package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tile-snake/game"
	"tile-snake/game/types"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func result(i, ticks int, cause types.CollisionType) game.Result {
	start := epoch.Add(time.Duration(i) * time.Minute)
	return game.Result{
		Ticks:     ticks,
		Length:    4,
		Cause:     cause,
		StartTime: start,
		EndTime:   start.Add(time.Duration(ticks) * 2 * time.Second),
	}
}

func TestAddRunAndSummaries(t *testing.T) {
	s, err := NewStats("")
	if err != nil {
		t.Fatal(err)
	}
	s.AddRun(result(0, 8, types.WallCollision))
	s.AddRun(result(1, 2, types.SelfCollision))
	s.AddRun(result(2, 5, types.WallCollision))

	if got := s.GetRunsPlayed(); got != 3 {
		t.Fatalf("expected 3 runs, got %d", got)
	}
	if got := s.GetAverageTicks(); got != 5 {
		t.Fatalf("expected average 5, got %v", got)
	}
	if got := s.GetMaxTicks(); got != 8 {
		t.Fatalf("expected max 8, got %d", got)
	}
	wall, self := s.GetCauseCounts()
	if wall != 2 || self != 1 {
		t.Fatalf("expected 2 wall and 1 self, got %d and %d", wall, self)
	}
}

func TestEmptyStats(t *testing.T) {
	s, err := NewStats("")
	if err != nil {
		t.Fatal(err)
	}
	if s.GetAverageTicks() != 0 || s.GetMaxTicks() != 0 || s.GetRunsPlayed() != 0 {
		t.Fatal("empty stats should report zeros")
	}
	if err := s.SaveToFile(); err != nil {
		t.Fatalf("in-memory save should be a no-op, got %v", err)
	}
}

func TestGroupingKeepsTotals(t *testing.T) {
	s, _ := NewStats("")
	s.groupSize = 3

	for i := 0; i < 10; i++ {
		cause := types.WallCollision
		if i%2 == 1 {
			cause = types.SelfCollision
		}
		s.AddRun(result(i, i+1, cause))
	}

	if got := s.GetRunsPlayed(); got != 10 {
		t.Fatalf("expected 10 runs after grouping, got %d", got)
	}
	if got := s.GetAverageTicks(); got != 5.5 {
		t.Fatalf("expected average 5.5, got %v", got)
	}
	if got := s.GetMaxTicks(); got != 10 {
		t.Fatalf("expected max 10, got %d", got)
	}
	wall, self := s.GetCauseCounts()
	if wall != 5 || self != 5 {
		t.Fatalf("expected 5/5, got %d/%d", wall, self)
	}

	levels := map[int]int{}
	for _, r := range s.GetStats() {
		levels[r.CompressionIndex]++
	}
	// 10 runs with groups of 3: three level-1 groups collapse into one level-2 group, one single run left.
	if levels[0] != 1 || levels[1] != 0 || levels[2] != 1 {
		t.Fatalf("unexpected compression levels %v", levels)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.json")
	s, err := NewStats(path)
	if err != nil {
		t.Fatal(err)
	}
	s.AddRun(result(0, 12, types.WallCollision))
	if err := s.SaveToFile(); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewStats(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.GetRunsPlayed() != 1 || loaded.GetMaxTicks() != 12 {
		t.Fatalf("unexpected loaded stats %+v", loaded.GetStats())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStats(path); err == nil {
		t.Fatal("expected error for corrupt stats file")
	}
}
