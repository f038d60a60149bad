package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mermaid-validate/internal/runner"
)

// maxVisibleItems caps the file list; older finished files scroll away.
const maxVisibleItems = 20

type progressModel struct {
	title   string
	events  <-chan runner.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	valid   int
	invalid int
	width   int
	done    bool
}

type fileItem struct {
	path    string
	status  runner.Status
	valid   int
	invalid int
}

type eventMsg runner.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders validation progress.
// Files are added as the runner queues them; the model quits when events is closed.
func NewProgressModel(title string, events <-chan runner.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(runner.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// выход раньше времени, прогон отменяет вызывающий
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d valid, %d invalid)", m.title, m.valid, m.invalid)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-12-4, 20)
	items := m.items
	if hidden := len(items) - maxVisibleItems; hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more\n", "", hidden)
		items = items[hidden:]
	}
	for _, item := range items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", statusLabel(item)))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev runner.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		idx = len(m.items)
		m.items = append(m.items, fileItem{path: ev.File})
		m.index[ev.File] = idx
	}
	item := &m.items[idx]
	item.status = ev.Status
	if finished(ev.Status) {
		item.valid, item.invalid = ev.Valid, ev.Invalid
		m.valid += ev.Valid
		m.invalid += ev.Invalid
	}

	finishedCount := 0
	for _, it := range m.items {
		if finished(it.status) {
			finishedCount++
		}
	}
	return m.prog.SetPercent(float64(finishedCount) / float64(len(m.items)))
}

func finished(s runner.Status) bool {
	switch s {
	case runner.StatusDone, runner.StatusInvalid, runner.StatusError:
		return true
	default:
		return false
	}
}

func statusLabel(item fileItem) string {
	switch item.status {
	case runner.StatusDone:
		return fmt.Sprintf("✓ %d", item.valid)
	case runner.StatusInvalid:
		return fmt.Sprintf("✗ %d/%d", item.invalid, item.valid+item.invalid)
	default:
		return item.status.String()
	}
}

func styleStatus(status runner.Status) lipgloss.Style {
	switch status {
	case runner.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case runner.StatusInvalid, runner.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case runner.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
