package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() disagree:\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
board:
  cell: 40
game:
  tick_interval: 150ms
  tail_chase: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Cell != 40 {
		t.Errorf("Board.Cell = %d, expected 40", cfg.Board.Cell)
	}
	if cfg.Board.Pixels != 400 {
		t.Errorf("Board.Pixels = %d, expected default 400", cfg.Board.Pixels)
	}
	if cfg.Game.TickInterval != 150*time.Millisecond {
		t.Errorf("TickInterval = %s, expected 150ms", cfg.Game.TickInterval)
	}
	if !cfg.Game.TailChase {
		t.Error("TailChase should be true")
	}

	sc := cfg.Session()
	if sc.CellPixels != 40 || sc.BoardPixels != 400 || !sc.TailChase {
		t.Errorf("Session() = %+v does not reflect the file", sc)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "snake.yaml"), []byte("web:\n  addr: \":8080\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Web.Addr != ":8080" {
		t.Errorf("Web.Addr = %q, expected :8080", cfg.Web.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := writeConfig(t, "board: [not, a, map]\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	path = writeConfig(t, "board:\n  pixels: 10\n  cell: 20\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for a board smaller than a cell")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero pixels", func(c *Config) { c.Board.Pixels = 0 }, "board.pixels"},
		{"zero cell", func(c *Config) { c.Board.Cell = 0 }, "board.cell"},
		{"zero tick", func(c *Config) { c.Game.TickInterval = 0 }, "game.tick_interval"},
		{"negative idle", func(c *Config) { c.SSH.IdleTimeout = -time.Second }, "ssh.idle_timeout"},
		{"bad web addr", func(c *Config) { c.Web.Addr = "3000" }, "web.addr"},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected error mentioning %s", err, tc.field)
			}
		})
	}
}

func TestApplyEnvPort(t *testing.T) {
	env := map[string]string{"PORT": "9000"}
	getenv := func(k string) string { return env[k] }

	cfg := Default()
	cfg.ApplyEnv(getenv)
	if cfg.Web.Addr != ":9000" {
		t.Errorf("Web.Addr = %q, expected :9000", cfg.Web.Addr)
	}

	cfg = Default()
	cfg.Web.Addr = "127.0.0.1:3000"
	cfg.ApplyEnv(getenv)
	if cfg.Web.Addr != "127.0.0.1:9000" {
		t.Errorf("Web.Addr = %q, expected host to be kept", cfg.Web.Addr)
	}

	cfg = Default()
	cfg.ApplyEnv(func(string) string { return "" })
	if cfg.Web.Addr != ":3000" {
		t.Errorf("Web.Addr = %q, expected unchanged without PORT", cfg.Web.Addr)
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"tick_interval: 100ms", "pixels: 400", "23234"} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, out)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.snake/host_key")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".snake", "host_key") {
		t.Errorf("ExpandHome() = %q", got)
	}

	got, _ = ExpandHome("/etc/key")
	if got != "/etc/key" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
