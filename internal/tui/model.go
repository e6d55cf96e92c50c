package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/semanticdata/duplicate-finder/internal/scanner"
	"github.com/semanticdata/duplicate-finder/pkg/sizeutil"
)

type Model struct {
	updates <-chan scanner.ProgressUpdate
	spin    spinner.Model
	started time.Time
	width   int

	indexed  int
	queued   int
	hashed   int
	errors   int
	sets     int
	wasted   int64
	quitting bool
}

type doneMsg struct{}

type updateMsg scanner.ProgressUpdate

func NewModel(updates <-chan scanner.ProgressUpdate) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)
	return Model{updates: updates, spin: spin, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, listenForUpdates(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.indexed += msg.IndexedDelta
		m.queued += msg.QueuedDelta
		m.hashed += msg.HashedDelta
		m.errors += msg.ErrorDelta
		m.sets += msg.SetDelta
		m.wasted += msg.WastedDelta
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	var progress string
	if m.queued == 0 {
		progress = m.spin.View() + labelStyle.Render(fmt.Sprintf(" indexing... %d files", m.indexed))
	} else {
		ratio := float64(m.hashed) / float64(m.queued)
		if ratio > 1 {
			ratio = 1
		}
		progress = barStyle.Render(renderBar(barWidth, ratio)) +
			labelStyle.Render(fmt.Sprintf(" %d/%d hashed", m.hashed, m.queued))
	}

	lines := []string{
		titleStyle.Render("duplicate-finder"),
		progress,
		labelStyle.Render(fmt.Sprintf("Duplicate sets: %d", m.sets)) +
			dimStyle.Render(fmt.Sprintf("  wasted: %s  errors: %d", sizeutil.FormatSize(m.wasted), m.errors)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan scanner.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
