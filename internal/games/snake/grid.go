package snake

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when board and cell sizes do not describe at
// least one whole cell.
var ErrInvalidGrid = errors.New("snake: invalid grid")

// Cell is a discrete board coordinate, 0-indexed from the top-left corner.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the neighbouring cell in the given heading.
func (c Cell) Add(h Heading) Cell {
	dx, dy := h.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a square board of TileCount x TileCount cells derived from a pixel
// size and a cell size. It is immutable once built.
type Grid struct {
	boardPixels int
	cellPixels  int
	tiles       int
}

// NewGrid builds a grid from the board and cell sizes in pixels.
func NewGrid(boardPixels, cellPixels int) (Grid, error) {
	if boardPixels <= 0 || cellPixels <= 0 {
		return Grid{}, fmt.Errorf("%w: board %dpx, cell %dpx", ErrInvalidGrid, boardPixels, cellPixels)
	}
	tiles := boardPixels / cellPixels
	if tiles < 1 {
		return Grid{}, fmt.Errorf("%w: board %dpx smaller than cell %dpx", ErrInvalidGrid, boardPixels, cellPixels)
	}
	return Grid{boardPixels: boardPixels, cellPixels: cellPixels, tiles: tiles}, nil
}

// TileCount returns the number of cells along each axis.
func (g Grid) TileCount() int {
	return g.tiles
}

// Area returns the total number of cells on the board.
func (g Grid) Area() int {
	return g.tiles * g.tiles
}

// BoardPixels returns the board edge length in pixels.
func (g Grid) BoardPixels() int {
	return g.boardPixels
}

// CellPixels returns the cell edge length in pixels.
func (g Grid) CellPixels() int {
	return g.cellPixels
}

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.tiles && c.Y >= 0 && c.Y < g.tiles
}

// Center returns the start cell for a new snake.
func (g Grid) Center() Cell {
	return Cell{X: g.tiles / 2, Y: g.tiles / 2}
}
