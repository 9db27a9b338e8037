package components

import (
	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/problem"
	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// Tabs renders the input mode selector.
type Tabs struct {
	Modes  []problem.Mode
	Active problem.Mode
}

// NewTabs creates tabs for every mode with active selected.
func NewTabs(active problem.Mode) Tabs {
	return Tabs{Modes: problem.Modes, Active: active}
}

// View renders the tabs side by side.
func (t Tabs) View() string {
	cells := make([]string, 0, len(t.Modes))
	for _, m := range t.Modes {
		if m == t.Active {
			cells = append(cells, theme.TabActive.Render(m.Label()))
		} else {
			cells = append(cells, theme.TabInactive.Render(m.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cells...)
}
