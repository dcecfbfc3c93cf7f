package manager

import (
	"time"

	"tile-snake/game/types"
)

// GameOver is the terminal flag of a run. It can only be set; a new run
// needs a new flag.
type GameOver struct {
	set   bool
	cause types.CollisionType
}

// Set marks the game as over. The first cause is kept. NoCollision is not a
// cause and is ignored, as is a nil flag.
func (g *GameOver) Set(cause types.CollisionType) {
	if g == nil || g.set || cause == types.NoCollision {
		return
	}
	g.set = true
	g.cause = cause
}

func (g *GameOver) IsSet() bool {
	return g != nil && g.set
}

func (g *GameOver) Cause() types.CollisionType {
	if g == nil {
		return types.NoCollision
	}
	return g.cause
}

// StateManager keeps the bookkeeping of a single run: the game-over flag,
// the number of ticks played and when the run started and ended.
type StateManager struct {
	gameOver  GameOver
	ticks     int
	startTime time.Time
	endTime   time.Time
	now       func() time.Time
}

func NewStateManager() *StateManager {
	return newStateManager(time.Now)
}

func newStateManager(now func() time.Time) *StateManager {
	return &StateManager{
		startTime: now(),
		now:       now,
	}
}

func (sm *StateManager) GameOver() *GameOver {
	return &sm.gameOver
}

func (sm *StateManager) RecordTick() {
	sm.ticks++
}

func (sm *StateManager) Ticks() int {
	return sm.ticks
}

// Observe stamps the end of the run the first time the flag is seen set.
func (sm *StateManager) Observe() {
	if sm.gameOver.IsSet() && sm.endTime.IsZero() {
		sm.endTime = sm.now()
	}
}

func (sm *StateManager) IsOver() bool {
	return sm.gameOver.IsSet()
}

func (sm *StateManager) StartTime() time.Time {
	return sm.startTime
}

// EndTime is zero while the run is in progress.
func (sm *StateManager) EndTime() time.Time {
	return sm.endTime
}

// Duration returns the run length so far, or the final length once over.
func (sm *StateManager) Duration() time.Duration {
	if sm.endTime.IsZero() {
		return sm.now().Sub(sm.startTime)
	}
	return sm.endTime.Sub(sm.startTime)
}
