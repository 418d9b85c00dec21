package loop

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const waitFor = time.Second

// chanSink forwards session output to channels so the test goroutine can
// observe the runner goroutine without sharing state.
type chanSink struct {
	frames chan snake.Snapshot
	finals chan int
}

func newChanSink() *chanSink {
	return &chanSink{
		frames: make(chan snake.Snapshot, 1024),
		finals: make(chan int, 16),
	}
}

func (s *chanSink) Frame(snap snake.Snapshot) { s.frames <- snap }
func (s *chanSink) Score(int)                 {}
func (s *chanSink) Final(n int)               { s.finals <- n }

func (s *chanSink) next(t *testing.T) snake.Snapshot {
	t.Helper()
	select {
	case snap := <-s.frames:
		return snap
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for a frame")
		return snake.Snapshot{}
	}
}

func (s *chanSink) expectQuiet(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case snap := <-s.frames:
		t.Fatalf("unexpected frame: state=%v tick=%d", snap.State, snap.Tick)
	case <-time.After(d):
	}
}

// startRunner builds a 5x5 session ticking every 5ms and runs it.
func startRunner(t *testing.T) (*Runner, *chanSink, context.CancelFunc, chan error) {
	t.Helper()
	sink := newChanSink()
	session, err := snake.NewSession(snake.Config{
		BoardPixels:  100,
		CellPixels:   20,
		TickInterval: 5 * time.Millisecond,
		Seed:         1,
	}, sink, sink)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if first := sink.next(t); first.State != snake.Idle {
		t.Fatalf("initial frame state = %v, expected idle", first.State)
	}

	r := New(session, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(cancel)
	return r, sink, cancel, errc
}

func TestRunnerIdleDoesNotTick(t *testing.T) {
	_, sink, _, _ := startRunner(t)
	sink.expectQuiet(t, 30*time.Millisecond)
}

func TestRunnerTicksUntilGameOver(t *testing.T) {
	r, sink, _, _ := startRunner(t)
	ctx := context.Background()

	if err := r.Input(ctx, core.ActionLeft); err != nil {
		t.Fatalf("Input() failed: %v", err)
	}
	if snap := sink.next(t); snap.State != snake.Running {
		t.Fatalf("state after first input = %v, expected running", snap.State)
	}

	// Head starts at (2,2) moving left: the third step leaves the board
	var last snake.Snapshot
	for last.State != snake.Over {
		last = sink.next(t)
	}
	if last.Tick != 3 {
		t.Errorf("game ended on tick %d, expected 3", last.Tick)
	}

	select {
	case <-sink.finals:
	case <-time.After(waitFor):
		t.Fatal("final score was not reported")
	}

	sink.expectQuiet(t, 40*time.Millisecond)
}

func TestRunnerResetCancelsTicks(t *testing.T) {
	r, sink, _, _ := startRunner(t)
	ctx := context.Background()

	if err := r.Input(ctx, core.ActionUp); err != nil {
		t.Fatalf("Input() failed: %v", err)
	}
	sink.next(t) // running

	if err := r.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	// Drain until the idle frame produced by the reset
	for {
		if snap := sink.next(t); snap.State == snake.Idle {
			break
		}
	}
	sink.expectQuiet(t, 40*time.Millisecond)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	r, _, cancel, errc := startRunner(t)

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(waitFor):
		t.Fatal("Run() did not return after cancel")
	}

	<-r.Done()
	if err := r.Input(context.Background(), core.ActionUp); !errors.Is(err, ErrStopped) {
		t.Errorf("Input() after stop = %v, expected ErrStopped", err)
	}
	if err := r.Reset(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("Reset() after stop = %v, expected ErrStopped", err)
	}
}
