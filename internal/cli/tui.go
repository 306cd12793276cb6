package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/errors"
	sfio "github.com/matzehuels/screenforge/pkg/io"
	"github.com/matzehuels/screenforge/pkg/progress"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// historyLimit is the number of finished batches the menu shows.
const historyLimit = 5

// =============================================================================
// MenuModel - Interactive batch menu
// =============================================================================

// menuItem is one entry of the menu. An empty op closes the menu.
type menuItem struct {
	label string
	hint  string
	op    engine.Operation
}

var menuItems = []menuItem{
	{label: "🚀 Create all", hint: "styles, every screen and the dark variants", op: engine.OpCreateAll},
	{label: "🎨 Styles only", hint: "color and text styles", op: engine.OpCreateStyles},
	{label: "🔄 Regenerate", hint: "remove previous pages and create again", op: engine.OpRegenerate},
	{label: "🗺️  Flow map", hint: "navigation graph on its own page", op: engine.OpCreateFlow},
	{label: "✕ Close", hint: "leave the menu"},
}

// BatchRunner runs one operation and reports progress to em.
type BatchRunner func(ctx context.Context, op engine.Operation, em progress.Emitter) (*engine.Result, error)

// eventMsg carries one progress event into the model.
type eventMsg progress.Event

// batchDoneMsg reports that a batch returned.
type batchDoneMsg struct {
	op  engine.Operation
	res *engine.Result
	err error
}

// MenuModel is the bubbletea model of the ui command.
type MenuModel struct {
	ctx   context.Context
	run   BatchRunner
	title string

	hub         *progress.Hub
	events      <-chan progress.Event
	unsubscribe func()

	bar      bprogress.Model
	Cursor   int
	Running  bool
	Percent  int
	Message  string
	Failed   bool
	History  []string
	Ran      int
	Quitting bool
}

// NewMenuModel returns a menu that runs batches through run.
func NewMenuModel(ctx context.Context, title string, run BatchRunner) MenuModel {
	bar := bprogress.New(bprogress.WithDefaultGradient())
	bar.Width = 40
	return MenuModel{
		ctx:     ctx,
		run:     run,
		title:   title,
		hub:     progress.NewHub(),
		bar:     bar,
		Message: "Select an action",
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		ev := progress.Event(msg)
		switch ev.Type {
		case progress.TypeProgress:
			m.Percent = ev.Percent
			m.Message = ev.Message
		case progress.TypeError:
			m.Failed = true
			m.Message = ev.Message
		}
		if ev.Terminal() {
			return m, nil
		}
		return m, waitForEvent(m.events)
	case batchDoneMsg:
		m.Running = false
		m.Ran++
		if m.unsubscribe != nil {
			m.unsubscribe()
			m.unsubscribe = nil
		}
		m.History = append(m.History, historyLine(msg))
		if len(m.History) > historyLimit {
			m.History = m.History[len(m.History)-historyLimit:]
		}
		if msg.err != nil {
			m.Failed = true
			m.Message = errors.UserMessage(msg.err)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-12, 60))
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Running {
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(menuItems)-1 {
			m.Cursor++
		}
	case "enter":
		item := menuItems[m.Cursor]
		if item.op == "" {
			m.Quitting = true
			return m, tea.Quit
		}
		return m.start(item.op)
	}
	return m, nil
}

// start subscribes to the hub before the batch runs, so no event of the
// batch is missed.
func (m MenuModel) start(op engine.Operation) (tea.Model, tea.Cmd) {
	m.events, m.unsubscribe = m.hub.Subscribe(progress.DefaultBuffer)
	m.Running = true
	m.Failed = false
	m.Percent = 0
	m.Message = "Starting " + string(op) + "..."
	return m, tea.Batch(waitForEvent(m.events), runOp(m.ctx, m.run, op, m.hub))
}

func waitForEvent(ch <-chan progress.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func runOp(ctx context.Context, run BatchRunner, op engine.Operation, em progress.Emitter) tea.Cmd {
	return func() tea.Msg {
		res, err := run(ctx, op, em)
		return batchDoneMsg{op: op, res: res, err: err}
	}
}

func historyLine(msg batchDoneMsg) string {
	if msg.err != nil {
		return fmt.Sprintf("%s %s: %s", iconError, msg.op, errors.UserMessage(msg.err))
	}
	var parts []string
	if n := len(msg.res.Screens); n > 0 {
		parts = append(parts, fmt.Sprintf("%d screens", n))
	}
	if msg.res.ColorStyles > 0 {
		parts = append(parts, fmt.Sprintf("%d styles", msg.res.ColorStyles+msg.res.TextStyles))
	}
	if msg.res.FlowNodes > 0 {
		parts = append(parts, fmt.Sprintf("%d flow nodes", msg.res.FlowNodes))
	}
	parts = append(parts, msg.res.Duration.Round(time.Millisecond).String())
	return fmt.Sprintf("%s %s · %s", iconSuccess, msg.op, strings.Join(parts, " · "))
}

func (m MenuModel) View() string {
	if m.Quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ run  q quit"))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		if m.Running && i != m.Cursor {
			style = listDimStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-16s", cursor, item.label)))
		b.WriteString(" ")
		b.WriteString(listDimStyle.Render(item.hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%3d%%", m.Percent))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, label, " ", m.bar.ViewAs(float64(m.Percent)/100)))
	b.WriteString("\n")
	if m.Failed {
		b.WriteString(StyleError.Render(m.Message))
	} else {
		b.WriteString(StyleDim.Render(m.Message))
	}
	b.WriteString("\n")

	if len(m.History) > 0 {
		b.WriteString("\n")
		for _, line := range m.History {
			b.WriteString(listDimStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// =============================================================================
// ui command
// =============================================================================

// uiCommand creates the "ui" command, an interactive menu over one document.
func (c *CLI) uiCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Interactive menu for running batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.settings(cmd)
			if err != nil {
				return err
			}
			d := doc.New()
			if input != "" {
				if d, err = sfio.ImportJSON(input); err != nil {
					return err
				}
			}
			h := s.host(d)
			eng, err := s.engine(h)
			if err != nil {
				return err
			}

			// Engine logs would tear the alternate screen.
			c.SetLogLevel(log.ErrorLevel)
			run := func(ctx context.Context, op engine.Operation, em progress.Emitter) (*engine.Result, error) {
				return eng.Handle(ctx, engine.Command{Type: string(op)}, em)
			}
			title := "📱 " + s.opts.PagePrefix + " Design Generator"
			final, err := tea.NewProgram(NewMenuModel(ctx, title, run), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(MenuModel); ok && m.Ran > 0 {
				if err := sfio.ExportJSON(h.Document(), output); err != nil {
					return err
				}
				printSuccess("Document saved")
				fmt.Fprintln(statusOut, statsLine(documentParts(h.Document().Stats()), false))
				printOutput(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "document", "d", "", "start from an existing document")
	cmd.Flags().StringVarP(&output, "output", "o", defaultScreensOutput, "where to save the document on exit")
	return cmd
}
