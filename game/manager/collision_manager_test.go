package manager

import (
	"testing"

	"tile-snake/game/entity"
	"tile-snake/game/types"
)

func snakeOf(coords ...[2]int) *entity.Snake {
	segs := make([]types.Point, len(coords))
	for i, c := range coords {
		segs[i] = types.Point{X: c[0], Y: c[1]}
	}
	return entity.NewSnake(segs)
}

func TestWallCollisionEachBoundary(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(16))
	cases := []struct {
		name string
		head [2]int
		want bool
	}{
		{"inside", [2]int{8, 8}, false},
		{"top-right corner", [2]int{16, 16}, false},
		{"bottom-left corner", [2]int{1, 1}, false},
		{"past right", [2]int{17, 5}, true},
		{"past top", [2]int{5, 17}, true},
		{"past left", [2]int{0, 5}, true},
		{"past bottom", [2]int{5, 0}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var over GameOver
			got := cm.CheckWallCollision(snakeOf(c.head), &over)
			if got != c.want {
				t.Fatalf("CheckWallCollision(%v) = %v, want %v", c.head, got, c.want)
			}
			if over.IsSet() != c.want {
				t.Fatalf("flag = %v, want %v", over.IsSet(), c.want)
			}
			if c.want && over.Cause() != types.WallCollision {
				t.Fatalf("cause = %v, want wall", over.Cause())
			}
		})
	}
}

func TestWallCollisionReadsOnlyHead(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(16))
	// Body segments off the map do not count.
	if cm.CheckWallCollision(snakeOf([2]int{0, 0}, [2]int{20, 20}, [2]int{5, 5}), nil) {
		t.Fatal("only the head should be checked")
	}
}

func TestWallCollisionAfterAdvance(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(16))
	s := snakeOf([2]int{16, 9}, [2]int{17, 9})
	s.Move(types.Right)
	if s.GetHead() != (types.Point{X: 18, Y: 9}) {
		t.Fatalf("expected head (18,9), got %v", s.GetHead())
	}
	var over GameOver
	if !cm.CheckWallCollision(s, &over) || !over.IsSet() {
		t.Fatal("expected wall collision")
	}
}

func TestDefaultGridKeepsTileSeventeen(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(types.DefaultGridSize))
	if cm.CheckWallCollision(snakeOf([2]int{17, 17}), nil) {
		t.Fatal("tile 17 exists on the default map")
	}
	if !cm.CheckWallCollision(snakeOf([2]int{18, 17}), nil) {
		t.Fatal("tile 18 is off the default map")
	}
}

func TestSelfCollision(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(types.DefaultGridSize))

	s := snakeOf([2]int{7, 9}, [2]int{8, 9}, [2]int{9, 9}, [2]int{8, 10})
	s.Move(types.Down)
	if s.GetHead() != (types.Point{X: 8, Y: 9}) {
		t.Fatalf("expected head (8,9), got %v", s.GetHead())
	}
	var over GameOver
	if !cm.CheckSelfCollision(s, &over) {
		t.Fatal("expected self collision")
	}
	if !over.IsSet() || over.Cause() != types.SelfCollision {
		t.Fatalf("flag not set correctly: %v %v", over.IsSet(), over.Cause())
	}
}

func TestNoSelfCollisionWhenDistinct(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(types.DefaultGridSize))
	var over GameOver
	s := entity.NewSnake(types.InitialSegments())
	if cm.CheckSelfCollision(s, &over) || over.IsSet() {
		t.Fatal("distinct segments must not collide")
	}
	if cm.CheckSelfCollision(snakeOf([2]int{3, 3}), &over) {
		t.Fatal("single segment snake cannot collide with itself")
	}
}

func TestCheckCollisionRunsBoth(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(16))
	var over GameOver
	// Head off the map and on top of the tail.
	s := snakeOf([2]int{17, 3}, [2]int{16, 3}, [2]int{17, 3})
	if got := cm.CheckCollision(s, &over); got != types.WallCollision {
		t.Fatalf("expected wall, got %v", got)
	}
	if over.Cause() != types.WallCollision {
		t.Fatalf("first cause should be kept, got %v", over.Cause())
	}

	var clean GameOver
	if got := cm.CheckCollision(entity.NewSnake(types.InitialSegments()), &clean); got != types.NoCollision || clean.IsSet() {
		t.Fatalf("expected no collision, got %v", got)
	}
}

func TestIsDanger(t *testing.T) {
	cm := NewCollisionManager(types.NewGrid(types.DefaultGridSize))
	segs := types.InitialSegments() // (7,9) (8,9) (9,9) (10,9)
	cases := []struct {
		p    types.Point
		want bool
	}{
		{types.Point{X: 11, Y: 9}, false},
		{types.Point{X: 9, Y: 9}, true},
		{types.Point{X: 7, Y: 9}, false}, // tail moves away this tick
		{types.Point{X: 0, Y: 9}, true},
		{types.Point{X: 10, Y: 18}, true},
	}
	for _, c := range cases {
		if got := cm.IsDanger(c.p, segs); got != c.want {
			t.Errorf("IsDanger(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}
