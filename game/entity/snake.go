package entity

import (
	"tile-snake/game/types"
)

// Snake holds the occupied tiles, tail at index 0 and head last.
type Snake struct {
	Segments []types.Point
}

// NewSnake copies segments into a new snake. An empty sequence panics.
func NewSnake(segments []types.Point) *Snake {
	mustHaveHead(segments)
	body := make([]types.Point, len(segments))
	copy(body, segments)
	return &Snake{Segments: body}
}

// Advance returns the segments after one tick in direction dir.
// The head moves one tile along dir and every other segment takes the
// position its forward neighbour had before the tick. The input is not
// modified and no bounds are applied.
func Advance(segments []types.Point, dir types.Direction) []types.Point {
	mustHaveHead(segments)
	last := len(segments) - 1

	next := make([]types.Point, len(segments))
	copy(next, segments[1:])
	next[last] = segments[last].Add(dir.ToPoint())
	return next
}

// Move advances the snake in place.
func (s *Snake) Move(dir types.Direction) {
	s.Segments = Advance(s.Segments, dir)
}

func (s *Snake) GetHead() types.Point {
	mustHaveHead(s.Segments)
	return s.Segments[len(s.Segments)-1]
}

// Body returns every segment except the head. The slice aliases the snake.
func (s *Snake) Body() []types.Point {
	mustHaveHead(s.Segments)
	return s.Segments[:len(s.Segments)-1]
}

func (s *Snake) Len() int {
	return len(s.Segments)
}

func mustHaveHead(segments []types.Point) {
	if len(segments) == 0 {
		panic("entity: snake has no segments")
	}
}
