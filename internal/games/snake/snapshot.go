package snake

// Snapshot is the pure-data render contract: everything a renderer needs to
// paint one frame. It is also the websocket wire format.
type Snapshot struct {
	TileCount   int       `json:"tileCount"`
	BoardPixels int       `json:"boardPixels"`
	CellPixels  int       `json:"cellPixels"`
	Snake       []Cell    `json:"snake"` // Head first
	Food        Cell      `json:"food"`
	HasFood     bool      `json:"hasFood"`
	State       Lifecycle `json:"state"`
	Won         bool      `json:"won"`
	Score       int       `json:"score"`
	Heading     Heading   `json:"heading"`
	Tick        uint64    `json:"tick"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		TileCount:   s.grid.TileCount(),
		BoardPixels: s.grid.BoardPixels(),
		CellPixels:  s.grid.CellPixels(),
		Snake:       s.snake.Cells(),
		Food:        s.food,
		HasFood:     s.hasFood,
		State:       s.state,
		Won:         s.won,
		Score:       s.score,
		Heading:     s.snake.Heading(),
		Tick:        s.ticks,
	}
}

// Head returns the head cell, or false for an empty snapshot.
func (snap Snapshot) Head() (Cell, bool) {
	if len(snap.Snake) == 0 {
		return Cell{}, false
	}
	return snap.Snake[0], true
}
