package agent

import (
	"tile-snake/game/manager"
	"tile-snake/game/types"

	"golang.org/x/exp/rand"
)

// DefaultTurnChance is the probability of trying a turn on a safe tick.
const DefaultTurnChance = 0.2

// Autopilot steers the snake when no player is at the keyboard. It keeps
// going straight, turns now and then, and never picks a heading that would
// end the run on the next tick if another one is safe.
type Autopilot struct {
	TurnChance float64

	collisions *manager.CollisionManager
	rng        *rand.Rand
}

func NewAutopilot(grid types.Grid, seed uint64) *Autopilot {
	return &Autopilot{
		TurnChance: DefaultTurnChance,
		collisions: manager.NewCollisionManager(grid),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// relative actions: turn left, go straight, turn right
func relativeToAbsolute(heading types.Direction, action int) types.Direction {
	switch action {
	case 0:
		return heading.TurnLeft()
	case 2:
		return heading.TurnRight()
	default:
		return heading
	}
}

// Decide returns the heading for the next tick given the current segments
// (tail first) and heading.
func (a *Autopilot) Decide(segments []types.Point, heading types.Direction) types.Direction {
	head := segments[len(segments)-1]

	var safe [3]bool
	anySafe := false
	for action := 0; action < 3; action++ {
		dir := relativeToAbsolute(heading, action)
		safe[action] = !a.collisions.IsDanger(head.Add(dir.ToPoint()), segments)
		anySafe = anySafe || safe[action]
	}
	if !anySafe {
		return heading
	}

	if safe[1] && a.rng.Float64() >= a.TurnChance {
		return heading
	}

	// Try the turns in a random order, then fall back to straight.
	first := a.rng.Intn(2) * 2
	for _, action := range []int{first, 2 - first, 1} {
		if safe[action] {
			return relativeToAbsolute(heading, action)
		}
	}
	return heading
}
