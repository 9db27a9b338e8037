package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// Button is a styled button that presses on enter. A disabled button
// ignores key presses, which keeps a second submit from firing while a
// request is running.
type Button struct {
	Label    string
	Disabled bool
	OnPress  func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Disabled {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Disabled {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}
