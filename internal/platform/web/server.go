// Package web serves the browser client and streams snake sessions over
// websockets. Every connection plays its own isolated session; the browser
// only forwards keys and draws the frames it receives.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/telemetry"
)

//go:embed static
var staticFS embed.FS

// Config configures the web host.
type Config struct {
	Addr            string        // Listen address, e.g. ":3000"
	Game            snake.Config  // Parameters of every hosted session
	WriteTimeout    time.Duration // Per-message websocket write deadline
	ShutdownTimeout time.Duration // Grace period for in-flight requests
}

// DefaultConfig mirrors the classic static host on port 3000.
func DefaultConfig() Config {
	return Config{
		Addr:            ":3000",
		Game:            snake.DefaultConfig(),
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server hosts the static client and the /ws endpoint.
type Server struct {
	cfg      Config
	logger   *log.Logger
	tracer   trace.Tracer
	upgrader websocket.Upgrader
}

// NewServer validates the game config and builds a server. Nil logger and
// tracer fall back to the default logger and a no-op tracer.
func NewServer(cfg Config, logger *log.Logger, tracer trace.Tracer) (*Server, error) {
	if _, err := snake.NewSession(cfg.Game, nil, nil); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		tracer: tracer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

// Handler returns the HTTP routes of the host.
func (s *Server) Handler() http.Handler {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(assets)))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, assets, "index.html")
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Open websocket sessions end with ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting web server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
