// Package config provides YAML-based configuration loading for the snake
// game and the hosts that serve it.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Config is the full application configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Game      GameConfig      `yaml:"game"`
	Web       WebConfig       `yaml:"web"`
	SSH       SSHConfig       `yaml:"ssh"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BoardConfig defines the board geometry in pixels.
type BoardConfig struct {
	Pixels int `yaml:"pixels"`
	Cell   int `yaml:"cell"`
}

// GameConfig defines simulation parameters.
type GameConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         int64         `yaml:"seed"`
	TailChase    bool          `yaml:"tail_chase"`
}

// WebConfig defines the HTTP host.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// SSHConfig defines the SSH host.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// TelemetryConfig toggles OpenTelemetry tracing. Exporter settings come from
// the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	var errs []error
	if c.Board.Pixels <= 0 {
		errs = append(errs, fmt.Errorf("board.pixels must be positive, got %d", c.Board.Pixels))
	}
	if c.Board.Cell <= 0 {
		errs = append(errs, fmt.Errorf("board.cell must be positive, got %d", c.Board.Cell))
	} else if c.Board.Pixels > 0 && c.Board.Pixels < c.Board.Cell {
		errs = append(errs, fmt.Errorf("board.pixels (%d) smaller than board.cell (%d)", c.Board.Pixels, c.Board.Cell))
	}
	if c.Game.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_interval must be positive, got %s", c.Game.TickInterval))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout must not be negative, got %s", c.SSH.IdleTimeout))
	}
	for name, addr := range map[string]string{"web.addr": c.Web.Addr, "ssh.addr": c.SSH.Addr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", name, addr, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Session returns the simulation parameters for a new game session.
func (c Config) Session() snake.Config {
	return snake.Config{
		BoardPixels:  c.Board.Pixels,
		CellPixels:   c.Board.Cell,
		TickInterval: c.Game.TickInterval,
		Seed:         c.Game.Seed,
		TailChase:    c.Game.TailChase,
	}
}

// ApplyEnv applies environment overrides. PORT replaces the web port and
// keeps the configured host.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(c.Web.Addr)
		if err != nil {
			host = ""
		}
		c.Web.Addr = net.JoinHostPort(host, port)
	}
}
