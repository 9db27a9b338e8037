// Package result shows a solved problem, or the reason it failed.
package result

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/export"
	"github.com/hoaithanh/giaitoan/internal/render"
	"github.com/hoaithanh/giaitoan/internal/router"
	"github.com/hoaithanh/giaitoan/internal/screen"
	"github.com/hoaithanh/giaitoan/internal/solver"
	"github.com/hoaithanh/giaitoan/internal/ui/layout"
	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// Options configures PDF export.
type Options struct {
	// ExportDir receives exported PDFs. Empty means the working directory.
	ExportDir string
	PDFFont   string
}

// exportDoneMsg reports a finished PDF export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// ResultScreen renders the display string with scrolling.
type ResultScreen struct {
	res     solver.Result
	problem string
	opts    Options
	display string

	offset    int
	lastLines int
	lastView  int
	exporting bool
	now       func() time.Time
}

var _ screen.Screen = (*ResultScreen)(nil)

// New creates the screen for res. problem labels the PDF.
func New(res solver.Result, problem string, opts Options) *ResultScreen {
	return &ResultScreen{
		res:     res,
		problem: problem,
		opts:    opts,
		display: render.Display(res),
		now:     time.Now,
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	if r.res.OK() {
		return "Lời giải"
	}
	return "Không giải được"
}

// Result returns the shown result.
func (r *ResultScreen) Result() solver.Result { return r.res }

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Cuộn"}}
	if r.res.OK() {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Xuất PDF"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "Giải bài khác"},
		layout.KeyHint{Key: "Esc", Description: "Quay lại"},
	)
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		r.exporting = false
		if msg.Err != nil {
			return r, screen.Toast("Không thể xuất PDF: "+msg.Err.Error(), true)
		}
		return r, screen.Toast("Đã lưu "+msg.Path, false)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			r.scroll(-1)
		case "down", "j":
			r.scroll(1)
		case "pgup":
			r.scroll(-max(r.lastView-1, 1))
		case "pgdown", "space":
			r.scroll(max(r.lastView-1, 1))
		case "home", "g":
			r.offset = 0
		case "end", "G":
			r.scroll(r.lastLines)
		case "p":
			return r, r.exportPDF()
		case "n":
			return r, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return r, nil
}

func (r *ResultScreen) scroll(delta int) {
	maxOffset := max(r.lastLines-r.lastView, 0)
	r.offset = min(max(r.offset+delta, 0), maxOffset)
}

func (r *ResultScreen) exportPDF() tea.Cmd {
	if !r.res.OK() {
		return screen.Toast("Chưa có lời giải để xuất.", true)
	}
	if r.exporting {
		return nil
	}
	r.exporting = true

	path := filepath.Join(r.opts.ExportDir, export.FileName(r.now()))
	opts := export.DefaultOptions()
	opts.FontPath = r.opts.PDFFont
	opts.Problem = r.problem
	solution := r.res.Solution
	return func() tea.Msg {
		return exportDoneMsg{Path: path, Err: export.WriteFile(path, solution, opts)}
	}
}

func (r *ResultScreen) View(width, height int) string {
	bodyWidth := max(min(width-6, 110), 20)
	rendered := render.Terminal(r.display, bodyWidth)
	if !r.res.OK() {
		rendered = theme.Incorrect.Render(rendered)
	}

	lines := strings.Split(rendered, "\n")
	viewHeight := max(height-2, 1)
	r.lastLines, r.lastView = len(lines), viewHeight
	r.scroll(0)

	end := min(r.offset+viewHeight, len(lines))
	visible := strings.Join(lines[r.offset:end], "\n")

	if len(lines) > viewHeight {
		pos := theme.Hint.Render(scrollLabel(r.offset, viewHeight, len(lines)))
		visible += "\n" + lipgloss.PlaceHorizontal(bodyWidth, lipgloss.Right, pos)
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(visible)
}

func scrollLabel(offset, view, total int) string {
	pct := 100
	if total > view {
		pct = offset * 100 / (total - view)
	}
	return fmt.Sprintf("%d%%", pct)
}
