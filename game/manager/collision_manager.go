package manager

import (
	"tile-snake/game/entity"
	"tile-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckWallCollision reports whether the head has left the map and, if so,
// sets the game-over flag. A nil flag makes it a pure predicate.
func (cm *CollisionManager) CheckWallCollision(snake *entity.Snake, over *GameOver) bool {
	if !cm.isWallCollision(snake.GetHead()) {
		return false
	}
	over.Set(types.WallCollision)
	return true
}

// CheckSelfCollision reports whether the head sits on another segment and,
// if so, sets the game-over flag. A nil flag makes it a pure predicate.
func (cm *CollisionManager) CheckSelfCollision(snake *entity.Snake, over *GameOver) bool {
	if !isSelfCollision(snake.GetHead(), snake.Body()) {
		return false
	}
	over.Set(types.SelfCollision)
	return true
}

// CheckCollision runs both checks. Both are always evaluated; the returned
// type prefers the wall when both fire.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake, over *GameOver) types.CollisionType {
	wall := cm.CheckWallCollision(snake, over)
	self := cm.CheckSelfCollision(snake, over)
	switch {
	case wall:
		return types.WallCollision
	case self:
		return types.SelfCollision
	default:
		return types.NoCollision
	}
}

// IsDanger reports whether a head moved to pos would end the game, given
// the segments before the move. The tail tile is vacated by the same tick.
func (cm *CollisionManager) IsDanger(pos types.Point, segments []types.Point) bool {
	if cm.isWallCollision(pos) {
		return true
	}
	if len(segments) < 2 {
		return false
	}
	return isSelfCollision(pos, segments[1:])
}

// isWallCollision checks if a position is off the map
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

func isSelfCollision(head types.Point, body []types.Point) bool {
	for _, part := range body {
		if part == head {
			return true
		}
	}
	return false
}
