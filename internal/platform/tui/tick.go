// Package tui provides the Bubble Tea integration: the terminal model that
// hosts a snake session, its key bindings, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the session to step. Epoch ties the tick to the schedule that
// produced it; a reset or game over changes the session epoch and the tick
// is dropped.
type TickMsg struct {
	Epoch uint64
	At    time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, At: t}
	})
}
