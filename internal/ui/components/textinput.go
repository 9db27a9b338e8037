package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app's styling. It is used
// both for typed problems and for file paths.
type TextInput struct {
	Model textinput.Model
	Label string
	Width int
}

// NewTextInput creates a new focused text input.
func NewTextInput(label, placeholder string, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4000
	ti.Focus()

	return TextInput{
		Model: ti,
		Label: label,
		Width: width,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and a bordered input.
func (t TextInput) View() string {
	if t.Width > 0 {
		t.Model.SetWidth(max(t.Width-6, 10))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)
	if t.Width > 0 {
		box = box.Width(t.Width)
	}

	var b strings.Builder
	if t.Label != "" {
		b.WriteString(theme.Body.Bold(true).Render(t.Label))
		b.WriteString("\n")
	}
	b.WriteString(box.Render(t.Model.View()))
	return b.String()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
