package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hoaithanh/giaitoan/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that need to react when a screen
// above them is popped, e.g. to refocus an input.
type Resumer interface {
	Resume() tea.Cmd
}

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// ToastMsg asks the app to show a transient notification above the footer.
type ToastMsg struct {
	Text  string
	Error bool
}

// Toast returns a command that shows text as a toast.
func Toast(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Error: isError}
	}
}
