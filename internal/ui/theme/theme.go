package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors the styles are built from.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// Dark is the default palette. Indigo accents on slate.
var Dark = Palette{
	Name:      "dark",
	Primary:   lipgloss.Color("#818CF8"), // Indigo 400
	Secondary: lipgloss.Color("#2DD4BF"), // Teal 400
	Accent:    lipgloss.Color("#FBBF24"), // Amber 400
	Success:   lipgloss.Color("#4ADE80"),
	Error:     lipgloss.Color("#FB7185"),
	Text:      lipgloss.Color("#F1F5F9"),
	TextDim:   lipgloss.Color("#94A3B8"),
	BgDark:    lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// Light mirrors the web page's light mode.
var Light = Palette{
	Name:      "light",
	Primary:   lipgloss.Color("#4F46E5"), // Indigo 600
	Secondary: lipgloss.Color("#0D9488"),
	Accent:    lipgloss.Color("#B45309"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	BgDark:    lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// Active palette colors. Reassigned by Apply.
var (
	Current Palette

	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Heading  lipgloss.Style
	Strong   lipgloss.Style
	Math     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
	Answer lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style
	ToastInfo      lipgloss.Style
	ToastError     lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

func init() {
	Apply(Dark)
}

// Apply switches every color and style to p.
func Apply(p Palette) {
	Current = p
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginTop(1)

	Strong = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Math = lipgloss.NewStyle().
		Foreground(Accent).
		PaddingLeft(4)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Answer = lipgloss.NewStyle().
		Bold(true).
		Foreground(Success).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Success).
		Padding(0, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	TabActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Border(lipgloss.RoundedBorder(), false, false, true, false).
		BorderForeground(Border).
		Padding(0, 2)

	ToastInfo = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Padding(0, 2)

	ToastError = lipgloss.NewStyle().
		Foreground(Text).
		Background(Error).
		Bold(true).
		Padding(0, 2)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
}

// Toggle switches between Dark and Light and returns the new palette.
func Toggle() Palette {
	if Current.Name == Dark.Name {
		Apply(Light)
	} else {
		Apply(Dark)
	}
	return Current
}
