package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// frameView collects what the session emits. Bubble Tea copies the model on
// every update, so the sinks live behind a pointer.
type frameView struct {
	screen *core.Screen
	snap   snake.Snapshot
	score  int
	final  int
	games  int
}

func (v *frameView) Frame(snap snake.Snapshot) { v.snap = snap }
func (v *frameView) Score(score int)           { v.score = score }

func (v *frameView) Final(score int) {
	v.final = score
	v.games++
}

// Model is the Bubble Tea model hosting one snake session.
type Model struct {
	session  *snake.Session
	view     *frameView
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	quitting bool
}

// NewModel creates a model with a fresh Idle session. Extra score sinks
// observe the session alongside the model, e.g. for tracing.
func NewModel(cfg snake.Config, rt core.RuntimeConfig, observers ...snake.ScoreSink) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = rt.Seed
	}

	view := &frameView{screen: core.NewScreen(rt.ScreenW, rt.ScreenH)}
	scores := snake.ScoreSinks(append([]snake.ScoreSink{view}, observers...)...)
	session, err := snake.NewSession(cfg, view, scores)
	if err != nil {
		return Model{}, err
	}

	return Model{
		session: session,
		view:    view,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		config:  rt,
	}, nil
}

// Init starts nothing; the session waits in Idle for the first heading.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionRestart:
		// Ticks already in flight carry the old epoch and will be dropped.
		m.session.Reset()
	case core.ActionNone:
	default:
		if m.session.HandleInput(action) {
			return m, tickCmd(m.session.Interval(), m.session.Epoch())
		}
	}

	return m, nil
}

// handleTick steps the session and schedules the next tick while running.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	res := m.session.Tick(msg.Epoch)
	if !res.Continue {
		return m, nil
	}
	return m, tickCmd(m.session.Interval(), m.session.Epoch())
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	snake.Render(m.view.screen, m.view.snap)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.view.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.help.View(m.keys)
	if m.view.games > 0 {
		footer = statusStyle.Render(fmt.Sprintf("games: %d  last: %d  ", m.view.games, m.view.final)) + footer
	}

	m.view.screen.Resize(m.config.ScreenW, m.config.ScreenH-lipgloss.Height(footer))
	snake.Render(m.view.screen, m.view.snap)

	return lipgloss.JoinVertical(lipgloss.Left, RenderScreen(m.view.screen), footer)
}

// Session exposes the hosted session.
func (m Model) Session() *snake.Session {
	return m.session
}

// Score returns the last score the session reported.
func (m Model) Score() int {
	return m.view.score
}

// Run starts a local Bubble Tea program playing one session.
func Run(cfg snake.Config, rt core.RuntimeConfig) error {
	model, err := NewModel(cfg, rt)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
