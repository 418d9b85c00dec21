// snake is the classic grid snake game for the terminal, SSH and the browser.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake web                - Serve the browser client over HTTP/websocket
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--seed <value>      - Set RNG seed for reproducible food placement
//	--tick <duration>   - Set the step interval (default: 100ms)
//	--log-level <level> - Server log level (debug, info, warn, error)
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/telemetry"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagTick     time.Duration
	flagLogLevel string
)

func main() {
	// A missing .env is fine; PORT and OTEL_* may come from the real environment.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal and browser",
	Long: `Snake steers a growing snake around a 20x20 board, eating food and
avoiding the walls and its own body.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Serve the browser version
  config   - Print the effective configuration

Examples:
  snake play
  snake play --tick 80ms --seed 42
  snake serve --ssh :2222
  snake web --addr :8080
  PORT=8080 snake web`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Step interval, e.g. 100ms (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves file config, environment and command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	cfg.ApplyEnv(os.Getenv)
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("tick") {
		cfg.Game.TickInterval = flagTick
	}
	return cfg, cfg.Validate()
}

// newLogger creates the structured server logger.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// setupTracing installs the OTLP exporter when telemetry is enabled and
// returns a tracer for component plus a flush function.
func setupTracing(ctx context.Context, cfg config.Config, component string, logger *log.Logger) (trace.Tracer, func()) {
	if !cfg.Telemetry.Enabled {
		return telemetry.NoopTracer(), func() {}
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		return telemetry.NoopTracer(), func() {}
	}

	logger.Info("telemetry enabled", "service", cfg.Telemetry.ServiceName)
	return telemetry.Tracer(component), func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}
}
