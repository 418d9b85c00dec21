package snake

import (
	"errors"
	"math/rand"
	"time"
)

// ErrBoardFull is returned when every cell is occupied and food has nowhere
// to go.
var ErrBoardFull = errors.New("snake: no free cell for food")

// maxSampleAttempts bounds rejection sampling before falling back to a scan
// of the free cells.
const maxSampleAttempts = 64

// Occupancy reports whether a cell is taken.
type Occupancy interface {
	Occupies(c Cell) bool
}

// CellSet is a plain set of cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// Occupies reports whether c is in the set.
func (s CellSet) Occupies(c Cell) bool {
	_, ok := s[c]
	return ok
}

// FoodPlacer picks food cells uniformly among the free cells of a grid.
type FoodPlacer struct {
	rng *rand.Rand
}

// NewFoodPlacer creates a placer. A zero seed means time based.
func NewFoodPlacer(seed int64) *FoodPlacer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FoodPlacer{rng: rand.New(rand.NewSource(seed))}
}

// Place returns a cell not covered by occupied, or ErrBoardFull.
func (p *FoodPlacer) Place(grid Grid, occupied Occupancy) (Cell, error) {
	n := grid.TileCount()

	for range maxSampleAttempts {
		c := Cell{X: p.rng.Intn(n), Y: p.rng.Intn(n)}
		if !occupied.Occupies(c) {
			return c, nil
		}
	}

	// Dense board: choose among the free cells directly
	var free []Cell
	for y := range n {
		for x := range n {
			c := Cell{X: x, Y: y}
			if !occupied.Occupies(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, ErrBoardFull
	}
	return free[p.rng.Intn(len(free))], nil
}
