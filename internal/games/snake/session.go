// Package snake implements the grid snake game: board model, food placement,
// snake movement and the tick-driven session state machine. It is pure logic;
// platforms drive it with actions and ticks and receive snapshots back.
package snake

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Lifecycle is the session state that governs ticking.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Running
	Over
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the lifecycle by name.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a lifecycle name written by MarshalText.
func (l *Lifecycle) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*l = Idle
	case "running":
		*l = Running
	case "over":
		*l = Over
	default:
		return fmt.Errorf("snake: unknown lifecycle %q", text)
	}
	return nil
}

// Config holds the simulation parameters of a session.
type Config struct {
	BoardPixels  int           // Board edge in pixels
	CellPixels   int           // Cell edge in pixels
	TickInterval time.Duration // Time between steps while running
	Seed         int64         // Food RNG seed, 0 means time based
	TailChase    bool          // Allow the head into the cell the tail leaves
}

// DefaultConfig returns the classic 20x20 board ticking every 100ms.
func DefaultConfig() Config {
	return Config{
		BoardPixels:  400,
		CellPixels:   20,
		TickInterval: 100 * time.Millisecond,
	}
}

// RenderSink consumes a snapshot once per tick and on lifecycle changes.
type RenderSink interface {
	Frame(snap Snapshot)
}

// ScoreSink receives the running score and, once per game, the final score.
type ScoreSink interface {
	Score(score int)
	Final(score int)
}

type nopSink struct{}

func (nopSink) Frame(Snapshot) {}
func (nopSink) Score(int)      {}
func (nopSink) Final(int)      {}

// TickResult reports one Tick call back to the scheduler.
type TickResult struct {
	Ticked   bool       // False when the tick was stale or the session not running
	Step     StepResult // Valid when Ticked
	Continue bool       // Whether another tick should be scheduled
}

// Session is one single-player game. It is not safe for concurrent use; a
// scheduler must serialize HandleInput, Tick and Reset.
type Session struct {
	cfg    Config
	grid   Grid
	snake  *Snake
	placer *FoodPlacer

	food    Cell
	hasFood bool
	score   int
	state   Lifecycle
	won     bool
	ticks   uint64

	// epoch changes whenever pending ticks must be discarded (reset, game over).
	epoch uint64

	render RenderSink
	scores ScoreSink
}

// NewSession builds a session in the Idle state. Nil sinks discard output.
func NewSession(cfg Config, render RenderSink, scores ScoreSink) (*Session, error) {
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("snake: tick interval must be positive, got %s", cfg.TickInterval)
	}
	grid, err := NewGrid(cfg.BoardPixels, cfg.CellPixels)
	if err != nil {
		return nil, err
	}
	if render == nil {
		render = nopSink{}
	}
	if scores == nil {
		scores = nopSink{}
	}

	s := &Session{
		cfg:    cfg,
		grid:   grid,
		snake:  NewSnake(grid.Center(), cfg.TailChase),
		placer: NewFoodPlacer(cfg.Seed),
		render: render,
		scores: scores,
	}
	s.Reset()
	return s, nil
}

// Reset returns to Idle with a fresh snake, food and score. Any tick
// scheduled before the reset becomes stale.
func (s *Session) Reset() {
	s.epoch++
	s.state = Idle
	s.won = false
	s.score = 0
	s.ticks = 0
	s.snake.Reset(s.grid.Center())
	s.placeFood()

	s.scores.Score(s.score)
	s.render.Frame(s.Snapshot())
}

// HandleInput feeds one action through the input mapper. It reports true
// when the action started the game, i.e. the caller must begin ticking.
func (s *Session) HandleInput(a core.Action) bool {
	if s.state == Over {
		return false
	}
	h, ok := HeadingForAction(a)
	if !ok {
		return false
	}
	if !s.snake.ProposeHeading(h) {
		return false
	}
	if s.state != Idle {
		return false
	}

	s.state = Running
	s.render.Frame(s.Snapshot())
	return true
}

// Tick performs one step if epoch is current and the session is running.
func (s *Session) Tick(epoch uint64) TickResult {
	if s.state != Running || epoch != s.epoch {
		return TickResult{}
	}

	s.ticks++
	res := s.snake.Step(s.grid, s.food, s.hasFood)
	switch res.Outcome {
	case Collided:
		s.finish(false)
	case Ate:
		s.score++
		s.scores.Score(s.score)
		if !s.placeFood() {
			s.finish(true)
		}
	}

	s.render.Frame(s.Snapshot())
	return TickResult{Ticked: true, Step: res, Continue: s.state == Running}
}

// finish enters Over and surfaces the final score.
func (s *Session) finish(won bool) {
	s.state = Over
	s.won = won
	s.epoch++
	s.scores.Final(s.score)
}

// placeFood re-samples the food cell. It reports false on a full board.
func (s *Session) placeFood() bool {
	c, err := s.placer.Place(s.grid, s.snake)
	if errors.Is(err, ErrBoardFull) {
		s.hasFood = false
		return false
	}
	s.food = c
	s.hasFood = true
	return true
}

// Epoch identifies the current tick schedule. Schedulers pass it back to Tick.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Lifecycle returns the current lifecycle state.
func (s *Session) Lifecycle() Lifecycle {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Won reports whether the last game ended with the board full.
func (s *Session) Won() bool {
	return s.won
}

// Interval returns the time between ticks.
func (s *Session) Interval() time.Duration {
	return s.cfg.TickInterval
}

// ScoreSinks fans score updates out to every non-nil sink in order.
func ScoreSinks(sinks ...ScoreSink) ScoreSink {
	var out multiScoreSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiScoreSink []ScoreSink

func (m multiScoreSink) Score(score int) {
	for _, s := range m {
		s.Score(score)
	}
}

func (m multiScoreSink) Final(score int) {
	for _, s := range m {
		s.Final(score)
	}
}
