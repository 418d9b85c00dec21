// Package loop drives a snake session from a single goroutine for hosts that
// have no event loop of their own. Input, reset and ticks are serialized
// through one select, so ticks never overlap and need no locking.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrStopped is returned when sending to a runner whose Run has returned.
var ErrStopped = errors.New("loop: runner stopped")

// Runner owns one session and its tick timer.
type Runner struct {
	session *snake.Session
	logger  *log.Logger
	inputs  chan core.Action
	resets  chan struct{}
	done    chan struct{}
}

// New creates a runner for session. The session must not be used by anyone
// else once Run is called.
func New(session *snake.Session, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		session: session,
		logger:  logger,
		inputs:  make(chan core.Action, 8),
		resets:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Input queues an action for the session.
func (r *Runner) Input(ctx context.Context, a core.Action) error {
	if r.stopped() {
		return ErrStopped
	}
	select {
	case r.inputs <- a:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset asks the session to return to Idle, cancelling any pending tick.
func (r *Runner) Reset(ctx context.Context) error {
	if r.stopped() {
		return ErrStopped
	}
	select {
	case r.resets <- struct{}{}:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run processes input, resets and ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	// tickC is nil whenever no tick is scheduled
	var tickC <-chan time.Time
	var epoch uint64

	schedule := func() {
		epoch = r.session.Epoch()
		timer.Reset(r.session.Interval())
		tickC = timer.C
	}
	cancel := func() {
		timer.Stop()
		tickC = nil
	}

	for {
		select {
		case <-ctx.Done():
			cancel()
			return ctx.Err()

		case a := <-r.inputs:
			if r.session.HandleInput(a) {
				r.logger.Debug("game started", "action", a)
				schedule()
			}

		case <-r.resets:
			cancel()
			r.session.Reset()
			r.logger.Debug("game reset")

		case <-tickC:
			tickC = nil
			res := r.session.Tick(epoch)
			if res.Continue {
				schedule()
				continue
			}
			if res.Ticked {
				r.logger.Debug("game over",
					"score", r.session.Score(),
					"collision", res.Step.Collision,
					"won", r.session.Won(),
				)
			}
		}
	}
}
