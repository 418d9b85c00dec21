package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration, matching defaults/snake.yaml.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Pixels: 400,
			Cell:   20,
		},
		Game: GameConfig{
			TickInterval: 100 * time.Millisecond,
		},
		Web: WebConfig{
			Addr: ":3000",
		},
		SSH: SSHConfig{
			Addr:        ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "snake",
		},
	}
}
