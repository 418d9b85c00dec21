package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight   = 1 // Score line above the board
	cellColumns = 2 // Terminal columns per board cell, keeps cells square-ish
)

// Render paints a snapshot into a terminal screen buffer. It only reads the
// snapshot.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	boardW := snap.TileCount*cellColumns + 2
	boardH := snap.TileCount + 2
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		area := dst.Bounds()
		_, cy := area.Center()
		dst.DrawTextCentered(area, cy-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(area, cy+1, fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight), core.ColorGray)
		return
	}

	board := core.NewRect((dst.Width()-boardW)/2, hudHeight, boardW, boardH)
	renderHUD(dst, board, snap)
	dst.DrawBox(board, core.ColorGray)

	if snap.HasFood {
		drawCell(dst, board, snap.Food, '●', ' ', core.ColorBrightRed)
	}
	for i := len(snap.Snake) - 1; i > 0; i-- {
		drawCell(dst, board, snap.Snake[i], '█', '█', core.ColorGreen)
	}
	if head, ok := snap.Head(); ok {
		drawCell(dst, board, head, '█', '█', core.ColorBrightGreen)
	}

	switch {
	case snap.State == Idle:
		renderOverlay(dst, board,
			"Press an arrow key to start",
			"Steer with ↑ ↓ ← →")
	case snap.State == Over && snap.Won:
		renderOverlay(dst, board,
			"Board cleared!",
			fmt.Sprintf("Final score: %d", snap.Score),
			"Press R to play again")
	case snap.State == Over:
		renderOverlay(dst, board,
			"Game Over",
			fmt.Sprintf("Final score: %d", snap.Score),
			"Press R to restart")
	}
}

func renderHUD(dst *core.Screen, board core.Rect, snap Snapshot) {
	dst.DrawText(board.X, 0, fmt.Sprintf(" Snake  Score: %d", snap.Score), core.ColorBrightWhite)
	state := snap.State.String()
	dst.DrawText(board.Right()-len(state)-1, 0, state, core.ColorGray)
}

// drawCell paints one board cell as two terminal columns. Cells outside the
// board interior are not drawn.
func drawCell(dst *core.Screen, board core.Rect, c Cell, left, right rune, color core.Color) {
	x := board.X + 1 + c.X*cellColumns
	y := board.Y + 1 + c.Y
	inner := core.NewRect(board.X+1, board.Y+1, board.W-2, board.H-2)
	if !inner.Contains(x, y) || !inner.Contains(x+1, y) {
		return
	}
	dst.SetColor(x, y, left, color)
	dst.SetColor(x+1, y, right, color)
}

// renderOverlay draws a framed message box centered on the board.
func renderOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(board, width+4, len(lines)*2+1)
	// Keep the left edge on screen so the text start stays readable.
	box.X = core.Clamp(box.X, 0, max(dst.Width()-box.W, 0))

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightWhite
		}
		dst.DrawTextCentered(box, box.Y+1+i*2, l, color)
	}
}
