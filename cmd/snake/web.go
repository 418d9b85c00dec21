package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser version",
	Long: `Serve the snake canvas client and stream games over a websocket.

The game runs on the server; the page only sends arrow keys and draws the
frames it receives. Every browser tab plays its own game.

Port selection, highest priority first:
  --addr flag, PORT environment variable (also read from .env),
  web.addr in the config file, :3000

Routes:
  /          - the game page
  /static/   - page assets
  /ws        - game websocket
  /healthz   - liveness probe

Examples:
  snake web
  snake web --addr 127.0.0.1:8080
  PORT=8080 snake web`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from PORT or config, :3000)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("addr") {
		cfg.Web.Addr = flagWebAddr
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger("snake-web")
	tracer, flush := setupTracing(ctx, cfg, "web", logger)
	defer flush()

	webCfg := web.DefaultConfig()
	webCfg.Addr = cfg.Web.Addr
	webCfg.Game = cfg.Session()

	server, err := web.NewServer(webCfg, logger, tracer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Snake is running at http://localhost%s\n", displayAddr(cfg.Web.Addr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		flush()
		os.Exit(1)
	}
}

// displayAddr trims the host from an address for the startup banner.
func displayAddr(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return ":" + port
}
