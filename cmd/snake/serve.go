package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent game; nothing is shared
between players.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --idle-timeout 10m        # Disconnect idle players sooner

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 30m (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sshCfg, err := sshServerConfig(cmd, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger("snake-ssh")
	tracer, flush := setupTracing(context.Background(), cfg, "ssh", logger)
	defer flush()

	server, err := tui.NewSSHServer(sshCfg, logger, tracer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		flush()
		os.Exit(1)
	}
}

// sshServerConfig merges the ssh section with command-line overrides.
func sshServerConfig(cmd *cobra.Command, cfg config.Config) (tui.SSHServerConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Addr = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if err := cfg.Validate(); err != nil {
		return tui.SSHServerConfig{}, err
	}

	hostKey, err := config.ExpandHome(cfg.SSH.HostKey)
	if err != nil {
		return tui.SSHServerConfig{}, err
	}

	return tui.SSHServerConfig{
		Address:     cfg.SSH.Addr,
		HostKeyPath: hostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Game:        cfg.Session(),
	}, nil
}
