package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestSetupExportsOnShutdown(t *testing.T) {
	var posts atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			posts.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(collector.Close)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", collector.URL)

	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	ctx := context.Background()
	shutdown, err := Setup(ctx, "snake-test")
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	if _, ok := otel.GetTextMapPropagator().(propagation.TraceContext); !ok {
		t.Errorf("propagator = %T, expected propagation.TraceContext", otel.GetTextMapPropagator())
	}

	_, g := StartGame(ctx, Tracer("test"), "ws", "session-1")
	g.Final(4)
	g.End(nil)

	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if posts.Load() == 0 {
		t.Error("expected the shutdown flush to export spans to the collector")
	}
}
