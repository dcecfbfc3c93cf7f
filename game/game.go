package game

import (
	"sync"
	"time"

	"tile-snake/game/entity"
	"tile-snake/game/manager"
	"tile-snake/game/types"

	"github.com/google/uuid"
)

// Options configures a new run.
type Options struct {
	GridSize    int
	StrictTurns bool            // Refuse headings that reverse into the neck
	Segments    []types.Point   // Starting snake, tail first; nil means InitialSegments
	Heading     types.Direction // Starting heading
}

func DefaultOptions() Options {
	return Options{
		GridSize: types.DefaultGridSize,
		Heading:  types.InitialDirection,
	}
}

// Snapshot is a copy of the run state, safe to hand to other goroutines.
type Snapshot struct {
	UUID     string              `json:"uuid"`
	GridSize int                 `json:"grid_size"`
	Tick     int                 `json:"tick"`
	Segments []types.Point       `json:"segments"`
	Heading  types.Direction     `json:"heading"`
	GameOver bool                `json:"game_over"`
	Cause    types.CollisionType `json:"cause"`
}

// Head returns the last segment of the snapshot.
func (s Snapshot) Head() types.Point {
	return s.Segments[len(s.Segments)-1]
}

// Result summarises a run once it is over.
type Result struct {
	UUID      string              `json:"uuid"`
	Ticks     int                 `json:"ticks"`
	Length    int                 `json:"length"`
	Cause     types.CollisionType `json:"cause"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Duration  time.Duration       `json:"duration"`
}

// Game owns every piece of state of one run. Input may arrive from any
// goroutine; ticks are serialized with it through mu.
type Game struct {
	UUID string
	Grid types.Grid

	opts       Options
	mu         sync.RWMutex
	snake      *entity.Snake
	headings   *manager.HeadingManager
	collisions *manager.CollisionManager
	state      *manager.StateManager
}

func NewGame(opts Options) *Game {
	if opts.GridSize <= 0 {
		opts.GridSize = types.DefaultGridSize
	}
	grid := types.NewGrid(opts.GridSize)

	g := &Game{
		Grid:       grid,
		opts:       opts,
		collisions: manager.NewCollisionManager(grid),
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	segments := g.opts.Segments
	if segments == nil {
		segments = types.InitialSegments()
	}
	g.UUID = uuid.New().String()
	g.snake = entity.NewSnake(segments)
	g.headings = manager.NewHeadingManager(g.opts.Heading, g.opts.StrictTurns)
	g.state = manager.NewStateManager()
}

// Reset starts a new run from scratch.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// SetHeading applies a directional input for the next tick and reports
// whether it was accepted.
func (g *Game) SetHeading(dir types.Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.headings.Apply(dir, g.snake)
}

// SetHeadingFor applies dir only while run is still the current run, so
// input computed from a finished run never leaks into the next one.
func (g *Game) SetHeadingFor(run string, dir types.Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if run != g.UUID {
		return false
	}
	return g.headings.Apply(dir, g.snake)
}

// Update plays one tick: move the snake, then run both collision checks.
// Once the game is over it does nothing and returns false.
func (g *Game) Update() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.IsOver() {
		return false
	}

	g.snake.Move(g.headings.Heading())
	g.state.RecordTick()

	over := g.state.GameOver()
	g.collisions.CheckWallCollision(g.snake, over)
	g.collisions.CheckSelfCollision(g.snake, over)
	g.state.Observe()
	return true
}

func (g *Game) IsOver() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.IsOver()
}

func (g *Game) Cause() types.CollisionType {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.GameOver().Cause()
}

func (g *Game) Heading() types.Direction {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.headings.Heading()
}

func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	segments := make([]types.Point, g.snake.Len())
	copy(segments, g.snake.Segments)
	return Snapshot{
		UUID:     g.UUID,
		GridSize: g.Grid.Size,
		Tick:     g.state.Ticks(),
		Segments: segments,
		Heading:  g.headings.Heading(),
		GameOver: g.state.IsOver(),
		Cause:    g.state.GameOver().Cause(),
	}
}

func (g *Game) Result() Result {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Result{
		UUID:      g.UUID,
		Ticks:     g.state.Ticks(),
		Length:    g.snake.Len(),
		Cause:     g.state.GameOver().Cause(),
		StartTime: g.state.StartTime(),
		EndTime:   g.state.EndTime(),
		Duration:  g.state.Duration(),
	}
}
