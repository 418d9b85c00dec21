package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

type finalCounter struct{ finals []int }

func (f *finalCounter) Score(int)       {}
func (f *finalCounter) Final(score int) { f.finals = append(f.finals, score) }

func newTestModel(t *testing.T, observers ...snake.ScoreSink) Model {
	t.Helper()
	cfg := snake.Config{
		BoardPixels:  100,
		CellPixels:   20,
		TickInterval: 10 * time.Millisecond,
		Seed:         7,
	}
	m, err := NewModel(cfg, core.RuntimeConfig{ScreenW: 40, ScreenH: 14}, observers...)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

// update feeds one message and returns the next model and command.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelStartsIdle(t *testing.T) {
	m := newTestModel(t)
	if m.Init() != nil {
		t.Error("Init should not schedule ticks while idle")
	}
	if got := m.Session().Lifecycle(); got != snake.Idle {
		t.Errorf("lifecycle = %v, expected Idle", got)
	}
	if !strings.Contains(m.View(), "Press an arrow key to start") {
		t.Error("idle view should show the start overlay")
	}
}

func TestModelFirstHeadingSchedulesTick(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("first heading should schedule a tick")
	}
	if got := m.Session().Lifecycle(); got != snake.Running {
		t.Fatalf("lifecycle = %v, expected Running", got)
	}

	// A second heading while running must not start another tick chain.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if cmd != nil {
		t.Error("heading change while running should not schedule a tick")
	}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	start := m.Session().Snapshot().Snake[0]
	m, cmd := update(t, m, TickMsg{Epoch: m.Session().Epoch()})
	if cmd == nil {
		t.Fatal("running tick should schedule the next tick")
	}
	head := m.Session().Snapshot().Snake[0]
	if head.X != start.X+1 || head.Y != start.Y {
		t.Errorf("head = %v, expected one cell right of %v", head, start)
	}
}

func TestModelStaleTickDropped(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	stale := m.Session().Epoch()

	m, _ = update(t, m, runeKey('r'))
	if got := m.Session().Lifecycle(); got != snake.Idle {
		t.Fatalf("lifecycle after restart = %v, expected Idle", got)
	}

	before := m.Session().Snapshot()
	m, cmd := update(t, m, TickMsg{Epoch: stale})
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	after := m.Session().Snapshot()
	if after.Tick != before.Tick || after.Snake[0] != before.Snake[0] {
		t.Error("stale tick changed the session")
	}
}

func TestModelGameOverStopsTicks(t *testing.T) {
	finals := &finalCounter{}
	m := newTestModel(t, finals)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})

	// 5x5 board, head starts at (2,2): two moves up reach the edge, the third leaves it.
	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = update(t, m, TickMsg{Epoch: m.Session().Epoch()})
	}
	if got := m.Session().Lifecycle(); got != snake.Over {
		t.Fatalf("lifecycle = %v, expected Over", got)
	}
	if cmd != nil {
		t.Error("game over should stop the tick chain")
	}
	if len(finals.finals) != 1 {
		t.Errorf("observer saw %d finals, expected 1", len(finals.finals))
	}
	if !strings.Contains(m.View(), "Game Over") {
		t.Error("view should show the game over overlay")
	}

	// Input while over is ignored.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if cmd != nil || m.Session().Lifecycle() != snake.Over {
		t.Error("input while over should be ignored")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeAndHelp(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	short := m.View()
	if got := len(strings.Split(short, "\n")); got != 20 {
		t.Errorf("view height = %d, expected 20", got)
	}

	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should toggle full help")
	}
	if got := len(strings.Split(m.View(), "\n")); got != 20 {
		t.Errorf("view height with full help = %d, expected 20", got)
	}
}
