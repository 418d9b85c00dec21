package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GameSpan traces one played connection. It satisfies the snake score sink
// contract so a session can report into it directly.
type GameSpan struct {
	span  trace.Span
	games int
	best  int
}

// StartGame opens a span for a connection of the given transport.
func StartGame(ctx context.Context, tracer trace.Tracer, transport, id string, attrs ...attribute.KeyValue) (context.Context, *GameSpan) {
	attrs = append(attrs,
		attribute.String("snake.transport", transport),
		attribute.String("snake.session_id", id),
	)
	ctx, span := tracer.Start(ctx, transport+".session", trace.WithAttributes(attrs...))
	return ctx, &GameSpan{span: span}
}

// Score tracks the best score seen on the connection.
func (g *GameSpan) Score(score int) {
	g.best = max(g.best, score)
}

// Final records a finished game as a span event.
func (g *GameSpan) Final(score int) {
	g.games++
	g.span.AddEvent("game.over", trace.WithAttributes(
		attribute.Int("game.score", score),
		attribute.Int("game.number", g.games),
	))
}

// End closes the span, marking it failed when err is non-nil.
func (g *GameSpan) End(err error) {
	g.span.SetAttributes(
		attribute.Int("snake.games", g.games),
		attribute.Int("snake.best_score", g.best),
	)
	if err != nil {
		g.span.RecordError(err)
		g.span.SetStatus(codes.Error, err.Error())
	}
	g.span.End()
}
