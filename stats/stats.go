package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"tile-snake/game"
	"tile-snake/game/types"
)

const (
	DefaultStatsFile = "data/stats.json"
	GroupSize        = 100 // Records merged into one at each compression level
)

// RunRecord holds either a single finished run or a group of them.
type RunRecord struct {
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Ticks            int       `json:"ticks"`            // Single runs
	Length           int       `json:"length"`           // Single runs
	WallHits         int       `json:"wallHits"`         // Runs ended by a wall
	SelfHits         int       `json:"selfHits"`         // Runs ended by the snake itself
	CompressionIndex int       `json:"compressionIndex"` // 0 for single runs, >0 for groups
	RunsCount        int       `json:"runsCount"`        // 1 for single runs, >1 for groups
	AverageTicks     float64   `json:"averageTicks"`
	MaxTicks         int       `json:"maxTicks"`
	MinTicks         int       `json:"minTicks"`
}

// Stats is the history of finished runs, optionally backed by a JSON file.
type Stats struct {
	Runs      []RunRecord
	path      string
	groupSize int
	mutex     sync.RWMutex
}

// NewStats loads the history stored at path. A missing file starts an empty
// history; an empty path keeps the history in memory only.
func NewStats(path string) (*Stats, error) {
	s := &Stats{
		Runs:      make([]RunRecord, 0),
		path:      path,
		groupSize: GroupSize,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, fmt.Errorf("load stats %s: %w", path, err)
	}
	return s, nil
}

// AddRun records a finished run.
func (s *Stats) AddRun(res game.Result) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := RunRecord{
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		Ticks:            res.Ticks,
		Length:           res.Length,
		CompressionIndex: 0,
		RunsCount:        1,
		AverageTicks:     float64(res.Ticks),
		MaxTicks:         res.Ticks,
		MinTicks:         res.Ticks,
	}
	switch res.Cause {
	case types.WallCollision:
		record.WallHits = 1
	case types.SelfCollision:
		record.SelfHits = 1
	}
	s.Runs = append(s.Runs, record)

	s.groupRuns()
}

// groupRuns merges every groupSize records of the same compression level
// into one record of the next level.
func (s *Stats) groupRuns() {
	sort.SliceStable(s.Runs, func(i, j int) bool {
		if s.Runs[i].CompressionIndex != s.Runs[j].CompressionIndex {
			return s.Runs[i].CompressionIndex < s.Runs[j].CompressionIndex
		}
		return s.Runs[i].StartTime.Before(s.Runs[j].StartTime)
	})

	for level := 0; ; level++ {
		var records []RunRecord
		for _, r := range s.Runs {
			if r.CompressionIndex == level {
				records = append(records, r)
			}
		}
		if len(records) < s.groupSize {
			break
		}

		var merged []RunRecord
		for i := 0; i < len(records); i += s.groupSize {
			end := i + s.groupSize
			if end > len(records) {
				merged = append(merged, records[i:]...)
				break
			}
			merged = append(merged, mergeRecords(records[i:end], level+1))
		}

		remaining := make([]RunRecord, 0, len(s.Runs))
		for _, r := range s.Runs {
			if r.CompressionIndex != level {
				remaining = append(remaining, r)
			}
		}
		s.Runs = append(remaining, merged...)
	}
}

func mergeRecords(group []RunRecord, level int) RunRecord {
	out := RunRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxTicks:         group[0].MaxTicks,
		MinTicks:         group[0].MinTicks,
	}
	var totalTicks float64
	for _, r := range group {
		if r.MaxTicks > out.MaxTicks {
			out.MaxTicks = r.MaxTicks
		}
		if r.MinTicks < out.MinTicks {
			out.MinTicks = r.MinTicks
		}
		if r.StartTime.Before(out.StartTime) {
			out.StartTime = r.StartTime
		}
		if r.EndTime.After(out.EndTime) {
			out.EndTime = r.EndTime
		}
		out.WallHits += r.WallHits
		out.SelfHits += r.SelfHits
		out.RunsCount += r.RunsCount
		totalTicks += r.AverageTicks * float64(r.RunsCount)
	}
	out.AverageTicks = totalTicks / float64(out.RunsCount)
	return out
}

// GetStats returns a copy of the stored records.
func (s *Stats) GetStats() []RunRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]RunRecord, len(s.Runs))
	copy(out, s.Runs)
	return out
}

func (s *Stats) GetRunsPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, r := range s.Runs {
		total += r.RunsCount
	}
	return total
}

func (s *Stats) GetAverageTicks() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var totalTicks float64
	var totalRuns int
	for _, r := range s.Runs {
		totalTicks += r.AverageTicks * float64(r.RunsCount)
		totalRuns += r.RunsCount
	}
	if totalRuns == 0 {
		return 0
	}
	return totalTicks / float64(totalRuns)
}

func (s *Stats) GetMaxTicks() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	best := 0
	for _, r := range s.Runs {
		if r.MaxTicks > best {
			best = r.MaxTicks
		}
	}
	return best
}

// GetCauseCounts returns how many runs ended on a wall and on the snake itself.
func (s *Stats) GetCauseCounts() (wall, self int) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, r := range s.Runs {
		wall += r.WallHits
		self += r.SelfHits
	}
	return wall, self
}

// SaveToFile writes the history as JSON. It does nothing for in-memory stats.
func (s *Stats) SaveToFile() error {
	if s.path == "" {
		return nil
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create stats directory: %w", err)
	}
	data, err := json.Marshal(s.Runs)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}

func (s *Stats) loadFromFile() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.Runs)
}
