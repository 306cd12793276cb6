package cli

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/progress"
)

func fakeRunner(events ...progress.Event) BatchRunner {
	return func(_ context.Context, op engine.Operation, em progress.Emitter) (*engine.Result, error) {
		for _, ev := range events {
			em.Emit(ev)
		}
		return &engine.Result{Operation: op, ColorStyles: 30, TextStyles: 6, Duration: 12 * time.Millisecond}, nil
	}
}

func press(t *testing.T, m MenuModel, key string) (MenuModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(MenuModel), cmd
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(context.Background(), "Menu", fakeRunner())

	m, _ = press(t, m, "up")
	require.Equal(t, 0, m.Cursor)
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "j")
	require.Equal(t, 2, m.Cursor)
	for range 10 {
		m, _ = press(t, m, "down")
	}
	require.Equal(t, len(menuItems)-1, m.Cursor)

	m, cmd := press(t, m, "enter")
	require.True(t, m.Quitting)
	require.NotNil(t, cmd)
	require.Empty(t, m.View())
}

func TestMenuRunsBatch(t *testing.T) {
	m := NewMenuModel(context.Background(), "Menu", fakeRunner(
		progress.Progress(progress.PhaseColorStyles, 20, "🎨 Stillər yaradılır..."),
		progress.Progress(progress.PhaseDone, 100, "✅ Stillər hazır!"),
	))
	m, _ = press(t, m, "down")

	m, cmd := press(t, m, "enter")
	require.True(t, m.Running)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	// Keys other than ctrl+c are ignored while a batch runs.
	m, _ = press(t, m, "up")
	require.Equal(t, 1, m.Cursor)

	// The runner fills the subscription buffer before the events are read.
	done := batch[1]()
	require.IsType(t, batchDoneMsg{}, done)

	next := batch[0]
	for next != nil {
		updated, c := m.Update(next())
		m = updated.(MenuModel)
		next = c
	}
	require.Equal(t, 100, m.Percent)
	require.Equal(t, "✅ Stillər hazır!", m.Message)

	updated, _ := m.Update(done)
	m = updated.(MenuModel)
	require.False(t, m.Running)
	require.Equal(t, 1, m.Ran)
	require.Len(t, m.History, 1)
	require.Contains(t, m.History[0], "create-styles")
	require.Contains(t, m.History[0], "36 styles")
	require.Contains(t, m.View(), "100%")
}

func TestMenuShowsFailure(t *testing.T) {
	failing := func(_ context.Context, op engine.Operation, em progress.Emitter) (*engine.Result, error) {
		err := errors.New(errors.ErrCodeMissingRole, "theme dark: missing color role %q", "danger")
		em.Emit(progress.Failed(progress.PhaseColorStyles, string(err.Code), err.Message))
		return &engine.Result{Operation: op}, err
	}
	m := NewMenuModel(context.Background(), "Menu", failing)

	m, cmd := press(t, m, "enter")
	batch := cmd().(tea.BatchMsg)
	done := batch[1]()
	updated, next := m.Update(batch[0]())
	m = updated.(MenuModel)
	require.Nil(t, next)
	require.True(t, m.Failed)

	updated, _ = m.Update(done)
	m = updated.(MenuModel)
	require.Contains(t, m.History[0], iconError)
	require.Contains(t, m.Message, "danger")
}

func TestMenuCtrlCWhileRunning(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	m := NewMenuModel(context.Background(), "Menu", func(ctx context.Context, op engine.Operation, em progress.Emitter) (*engine.Result, error) {
		<-block
		return nil, stderrors.New("unreachable")
	})

	m, _ = press(t, m, "enter")
	require.True(t, m.Running)
	m, cmd := press(t, m, "q")
	require.False(t, m.Quitting)
	require.Nil(t, cmd)

	m, cmd = press(t, m, "ctrl+c")
	require.True(t, m.Quitting)
	require.NotNil(t, cmd)
}
