package snake

import "slices"

// StepOutcome is the result kind of a single snake step.
type StepOutcome int

const (
	Moved StepOutcome = iota
	Ate
	Collided
)

func (o StepOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	default:
		return "unknown"
	}
}

// Collision tells why a step was fatal.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionOutOfBounds
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionOutOfBounds:
		return "out_of_bounds"
	case CollisionSelf:
		return "self"
	default:
		return "none"
	}
}

// StepResult describes what happened during one step.
type StepResult struct {
	Outcome   StepOutcome
	Collision Collision
	Head      Cell // Head cell the step moved to (or tried to)
}

// Snake is the ordered body (head first) plus the buffered heading.
type Snake struct {
	body    []Cell
	heading Heading

	// tailChase lets the head enter the cell the tail vacates in the same
	// step. Off by default: any pre-step body cell is fatal.
	tailChase bool
}

// NewSnake creates a one-cell snake at start with no heading.
func NewSnake(start Cell, tailChase bool) *Snake {
	s := &Snake{tailChase: tailChase}
	s.Reset(start)
	return s
}

// Reset shrinks the snake to a single cell at start and clears the heading.
func (s *Snake) Reset(start Cell) {
	s.body = append(s.body[:0], start)
	s.heading = HeadingNone
}

// ProposeHeading buffers h for the next step. The exact opposite of the
// current heading is rejected; any heading is accepted while there is none.
// It never moves the body.
func (s *Snake) ProposeHeading(h Heading) bool {
	if h == HeadingNone {
		return false
	}
	if s.heading != HeadingNone && h == s.heading.Opposite() {
		return false
	}
	s.heading = h
	return true
}

// Step advances the head one cell along the heading. The tail is dropped
// unless the new head lands on food. A snake without a heading stays put.
func (s *Snake) Step(grid Grid, food Cell, hasFood bool) StepResult {
	head := s.Head()
	if s.heading == HeadingNone {
		return StepResult{Outcome: Moved, Head: head}
	}

	next := head.Add(s.heading)
	if !grid.InBounds(next) {
		return StepResult{Outcome: Collided, Collision: CollisionOutOfBounds, Head: next}
	}

	eats := hasFood && next == food
	if s.hitsBody(next, eats) {
		return StepResult{Outcome: Collided, Collision: CollisionSelf, Head: next}
	}

	s.body = slices.Insert(s.body, 0, next)
	if eats {
		return StepResult{Outcome: Ate, Head: next}
	}
	s.body = s.body[:len(s.body)-1]
	return StepResult{Outcome: Moved, Head: next}
}

// hitsBody checks c against the body as it was before the step.
func (s *Snake) hitsBody(c Cell, eats bool) bool {
	check := s.body
	if s.tailChase && !eats {
		check = s.body[:len(s.body)-1]
	}
	return slices.Contains(check, c)
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the buffered heading.
func (s *Snake) Heading() Heading {
	return s.heading
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []Cell {
	return slices.Clone(s.body)
}

// Occupies reports whether any body cell equals c.
func (s *Snake) Occupies(c Cell) bool {
	return slices.Contains(s.body, c)
}
