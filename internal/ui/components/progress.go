package components

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// LoadingTickMsg advances a Loading indicator by one frame.
type LoadingTickMsg struct {
	ID int
}

// Loading is an indeterminate progress bar: a filled segment that sweeps
// back and forth under a label while a request is in flight.
type Loading struct {
	ID      int
	Label   string
	Width   int
	Running bool
	frame   int
}

const (
	loadingInterval = 80 * time.Millisecond
	segmentWidth    = 8
)

// NewLoading creates a stopped indicator.
func NewLoading(id int, label string, width int) Loading {
	return Loading{ID: id, Label: label, Width: width}
}

// Start begins the animation.
func (l Loading) Start() (Loading, tea.Cmd) {
	l.Running = true
	l.frame = 0
	return l, l.tick()
}

// Stop halts the animation. Pending ticks are dropped by Update.
func (l Loading) Stop() Loading {
	l.Running = false
	return l
}

// Update advances the frame on the indicator's own ticks.
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	tick, ok := msg.(LoadingTickMsg)
	if !ok || tick.ID != l.ID || !l.Running {
		return l, nil
	}
	l.frame++
	return l, l.tick()
}

func (l Loading) tick() tea.Cmd {
	id := l.ID
	return tea.Tick(loadingInterval, func(time.Time) tea.Msg {
		return LoadingTickMsg{ID: id}
	})
}

// View renders the label followed by the sweeping bar.
func (l Loading) View() string {
	if !l.Running {
		return ""
	}

	dots := strings.Repeat(".", l.frame/4%4)
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(l.Label + dots)

	barWidth := l.Width
	if barWidth < segmentWidth*2 {
		barWidth = segmentWidth * 2
	}

	span := barWidth - segmentWidth
	pos := l.frame % (span * 2)
	if pos > span {
		pos = span*2 - pos
	}

	bar := theme.ProgressEmpty.Render(strings.Repeat(" ", pos)) +
		theme.ProgressFilled.Render(strings.Repeat(" ", segmentWidth)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-pos-segmentWidth))

	return label + "\n" + bar
}
