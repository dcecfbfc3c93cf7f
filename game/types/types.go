package types

import (
	"fmt"
	"time"
)

// Game constants
const (
	DefaultGridSize     = 17              // Tiles per side of the map
	DefaultTickInterval = 2 * time.Second // Time between two snake movements
)

// InitialDirection is the heading every new run starts with.
const InitialDirection = Right

// Point is a tile coordinate. Tiles are 1-indexed on both axes.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Grid represents the square tile map. Valid tiles are 1..Size on each axis.
type Grid struct {
	Size int
}

func NewGrid(size int) Grid {
	return Grid{Size: size}
}

// Contains reports whether p is a tile of the map.
func (g Grid) Contains(p Point) bool {
	return p.X >= 1 && p.X <= g.Size && p.Y >= 1 && p.Y <= g.Size
}

// Tiles returns every tile of the map, x-major: (1,1), (1,2) ... (1,Size), (2,1) ...
func (g Grid) Tiles() []Point {
	if g.Size <= 0 {
		return []Point{}
	}
	tiles := make([]Point, 0, g.Size*g.Size)
	for x := 1; x <= g.Size; x++ {
		for y := 1; y <= g.Size; y++ {
			tiles = append(tiles, Point{X: x, Y: y})
		}
	}
	return tiles
}

// InitialSegments returns the starting snake, tail first and head last.
// A new slice is returned on every call.
func InitialSegments() []Point {
	return []Point{{X: 7, Y: 9}, {X: 8, Y: 9}, {X: 9, Y: 9}, {X: 10, Y: 9}}
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "unknown"
	}
}

// MarshalText encodes the collision type by name in JSON payloads.
func (c CollisionType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CollisionType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*c = NoCollision
	case "wall":
		*c = WallCollision
	case "self":
		*c = SelfCollision
	default:
		return fmt.Errorf("invalid collision type %q", text)
	}
	return nil
}
