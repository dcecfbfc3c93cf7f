package ui

import (
	"fmt"

	"tile-snake/game"
	"tile-snake/game/manager"
	"tile-snake/game/types"
	"tile-snake/stats"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10
	panelWidth    = 220
)

type Renderer struct {
	cellSize int32
	gridSize int32
	offsetX  int32
	offsetY  int32
}

func NewRenderer(cellSize, gridSize int) *Renderer {
	return &Renderer{
		cellSize: int32(cellSize),
		gridSize: int32(gridSize),
		offsetX:  borderPadding,
		offsetY:  borderPadding,
	}
}

// WindowSize returns the window dimensions fitting the map and the stats panel.
func (r *Renderer) WindowSize() (int32, int32) {
	side := r.cellSize*r.gridSize + 2*borderPadding
	return side + panelWidth, side
}

// cellOrigin maps a tile to the top-left pixel of its cell. Tile y grows
// upwards, screen y grows downwards.
func (r *Renderer) cellOrigin(p types.Point) (int32, int32) {
	x := r.offsetX + int32(p.X-1)*r.cellSize
	y := r.offsetY + (r.gridSize-int32(p.Y))*r.cellSize
	return x, y
}

func (r *Renderer) Draw(snap game.Snapshot, st *stats.Stats) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	total := r.cellSize * r.gridSize
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, total+2, total+2, rl.DarkGray)

	for x := 1; x <= int(r.gridSize); x++ {
		for y := 1; y <= int(r.gridSize); y++ {
			cx, cy := r.cellOrigin(types.Point{X: x, Y: y})
			rl.DrawRectangleLines(cx, cy, r.cellSize, r.cellSize, rl.Gray)
		}
	}

	for i, p := range snap.Segments {
		// Segments that left the map are not drawn.
		if p.X < 1 || p.Y < 1 || p.X > int(r.gridSize) || p.Y > int(r.gridSize) {
			continue
		}
		color := rl.Green
		if i == 0 { // Tail
			color = rl.DarkGreen
		} else if i == len(snap.Segments)-1 { // Head
			color = rl.Lime
		}
		cx, cy := r.cellOrigin(p)
		rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, color)
	}

	if len(snap.Segments) > 0 {
		r.drawHeadingMarker(snap.Head(), snap.Heading)
	}

	r.drawStatsPanel(snap, st)
	rl.EndDrawing()
}

func (r *Renderer) drawHeadingMarker(head types.Point, heading types.Direction) {
	if head.X < 1 || head.Y < 1 || head.X > int(r.gridSize) || head.Y > int(r.gridSize) {
		return
	}
	x, y := r.cellOrigin(head)
	half := r.cellSize / 2
	cx, cy := float32(x+half), float32(y+half)
	q := float32(r.cellSize) / 4

	var tip, left, right rl.Vector2
	switch heading {
	case types.Up:
		tip, left, right = rl.Vector2{X: cx, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy + q}
	case types.Down:
		tip, left, right = rl.Vector2{X: cx, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy - q}
	case types.Left:
		tip, left, right = rl.Vector2{X: cx - q, Y: cy}, rl.Vector2{X: cx + q, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy - q}
	default:
		tip, left, right = rl.Vector2{X: cx + q, Y: cy}, rl.Vector2{X: cx - q, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy + q}
	}
	// raylib wants counter-clockwise vertices
	rl.DrawTriangle(tip, left, right, rl.Yellow)
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, st *stats.Stats) {
	statsX := r.offsetX + r.cellSize*r.gridSize + 15
	statsY := int32(borderPadding)
	const fontSize, lineHeight = 18, 24

	lines := []string{
		fmt.Sprintf("Tick: %d", snap.Tick),
		fmt.Sprintf("Heading: %s", snap.Heading),
		fmt.Sprintf("Length: %d", len(snap.Segments)),
	}
	if st != nil {
		wall, self := st.GetCauseCounts()
		lines = append(lines,
			"",
			fmt.Sprintf("Runs: %d", st.GetRunsPlayed()),
			fmt.Sprintf("Avg ticks: %.1f", st.GetAverageTicks()),
			fmt.Sprintf("Max ticks: %d", st.GetMaxTicks()),
			fmt.Sprintf("Wall: %d  Self: %d", wall, self),
		)
	}
	for i, line := range lines {
		rl.DrawText(line, statsX, statsY+int32(i)*lineHeight, fontSize, rl.RayWhite)
	}

	if snap.GameOver {
		msg := fmt.Sprintf("GAME OVER (%s)", snap.Cause)
		y := statsY + int32(len(lines)+1)*lineHeight
		rl.DrawText(msg, statsX, y, fontSize, rl.Red)
		rl.DrawText("SPACE to restart", statsX, y+lineHeight, fontSize-4, rl.LightGray)
	}
	rl.DrawText("WASD to steer, Q to quit", statsX, r.offsetY+r.cellSize*r.gridSize-fontSize, fontSize-4, rl.LightGray)
}

// PollHeading drains the characters typed since the last frame and returns
// the last WASD direction among them.
func PollHeading() (types.Direction, bool) {
	var (
		dir types.Direction
		ok  bool
	)
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if d, found := manager.KeyToDirection(rune(ch)); found {
			dir, ok = d, true
		}
	}
	return dir, ok
}
