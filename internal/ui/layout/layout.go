package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	// Below this width the footer drops hint descriptions it cannot fit.
	CompactWidthThreshold = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Cửa sổ quá nhỏ!\n\nVui lòng mở rộng tối thiểu\n%d x %d\n\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
	return msg
}

// RenderHeader renders the application header bar: the app name on the
// left, the screen title in the middle and a status (model, theme) on the
// right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("∑ Giải Toán THPT")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(status)

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := max(width-4, 0) // border + padding

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the footer with key hints. On compact widths the
// hints that do not fit on one line keep only their key.
func RenderFooter(hints []KeyHint, width int) string {
	sep := "   "
	if IsCompactWidth(width) {
		sep = "  "
	}
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	avail := max(width-6, 0)
	used := 0
	parts := make([]string, 0, len(hints))
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if IsCompactWidth(width) && used+lipgloss.Width(part)+restWidth(hints[i+1:], sep) > avail {
			part = keyStyle.Render(h.Key)
		}
		used += lipgloss.Width(part) + len(sep)
		parts = append(parts, part)
	}

	content := "  " + strings.Join(parts, sep)

	box := lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)

	return box
}

// restWidth is the room the remaining hints need as bare keys.
func restWidth(hints []KeyHint, sep string) int {
	w := 0
	for _, h := range hints {
		w += lipgloss.Width(h.Key) + len(sep)
	}
	return w
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// RenderToast renders a one-line notification centered in width.
func RenderToast(text string, isError bool, width int) string {
	style := theme.ToastInfo
	if isError {
		style = theme.ToastError
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}
