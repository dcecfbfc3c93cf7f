package manager

import (
	"unicode"

	"tile-snake/game/entity"
	"tile-snake/game/types"
)

// HeadingManager applies directional input to the current heading.
//
// By default every valid heading overwrites the current one, reversals
// included. With strict set, a heading that would put the head straight
// back onto the segment behind it is refused.
type HeadingManager struct {
	heading types.Direction
	strict  bool
}

func NewHeadingManager(initial types.Direction, strict bool) *HeadingManager {
	return &HeadingManager{
		heading: initial,
		strict:  strict,
	}
}

func (hm *HeadingManager) Heading() types.Direction {
	return hm.heading
}

// Apply sets dir as the heading for the next tick and reports whether it
// was accepted. snake is only consulted in strict mode and may be nil otherwise.
func (hm *HeadingManager) Apply(dir types.Direction, snake *entity.Snake) bool {
	if !dir.Valid() {
		return false
	}
	if hm.strict && snake != nil && reversesIntoNeck(snake, dir) {
		return false
	}
	hm.heading = dir
	return true
}

func reversesIntoNeck(snake *entity.Snake, dir types.Direction) bool {
	if snake.Len() < 2 {
		return false
	}
	neck := snake.Segments[snake.Len()-2]
	return snake.GetHead().Add(dir.ToPoint()) == neck
}

// KeyToDirection maps the WASD keys to headings.
func KeyToDirection(key rune) (types.Direction, bool) {
	switch unicode.ToLower(key) {
	case 'w':
		return types.Up, true
	case 'd':
		return types.Right, true
	case 's':
		return types.Down, true
	case 'a':
		return types.Left, true
	}
	return 0, false
}
