package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/loop"
	"github.com/vovakirdan/tui-snake/internal/telemetry"
)

// outboxSize bounds messages queued between the game loop and the socket.
const outboxSize = 64

// connSink forwards session output to the socket writer.
type connSink struct {
	ctx context.Context
	out chan<- ServerMessage
}

func (c connSink) send(msg ServerMessage) {
	select {
	case c.out <- msg:
	case <-c.ctx.Done():
	}
}

func (c connSink) Frame(snap snake.Snapshot) { c.send(frameMessage(snap)) }
func (c connSink) Score(score int)           { c.send(scoreMessage(TypeScore, score)) }
func (c connSink) Final(score int)           { c.send(scoreMessage(TypeFinal, score)) }

// handleWS plays one session for the lifetime of a websocket connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := s.logger.With("id", id, "remote", r.RemoteAddr)
	ctx, span := telemetry.StartGame(r.Context(), s.tracer, "ws", id,
		attribute.String("net.peer", r.RemoteAddr),
	)

	logger.Info("session started")
	err = s.play(ctx, conn, span, logger)
	span.End(err)
	if err != nil {
		logger.Warn("session ended", "error", err)
		return
	}
	logger.Info("session ended")
}

// play wires a session to the connection: one goroutine runs the game loop,
// one reads client messages, one writes server messages.
func (s *Server) play(ctx context.Context, conn *websocket.Conn, span *telemetry.GameSpan, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	out := make(chan ServerMessage, outboxSize)
	sink := connSink{ctx: ctx, out: out}

	// NewSession renders the initial Idle frame into the outbox.
	session, err := snake.NewSession(s.cfg.Game, sink, snake.ScoreSinks(sink, span))
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	runner := loop.New(session, logger)

	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.readLoop(ctx, conn, runner)
	})
	g.Go(func() error {
		return s.writeLoop(ctx, conn, out)
	})
	// Unblock the reader when the session ends for any other reason.
	g.Go(func() error {
		<-ctx.Done()
		_ = conn.SetReadDeadline(time.Now())
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) || isClientGone(err) {
		return nil
	}
	return err
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, runner *loop.Runner) error {
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || isClientGone(err) {
				return nil
			}
			return fmt.Errorf("web: read: %w", err)
		}

		var err error
		switch msg.Type {
		case TypeKey:
			if action := ActionForKey(msg.Key); action.IsDirectional() {
				err = runner.Input(ctx, action)
			}
		case TypeReset:
			err = runner.Reset(ctx)
		default:
			s.logger.Debug("ignoring message", "type", msg.Type)
		}
		if err != nil {
			if errors.Is(err, loop.ErrStopped) {
				return nil
			}
			return err
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan ServerMessage) error {
	for {
		select {
		case <-ctx.Done():
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return nil
		case msg := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("web: write: %w", err)
			}
		}
	}
}

func isClientGone(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	)
}
