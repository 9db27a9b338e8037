package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hoaithanh/giaitoan/internal/router"
	"github.com/hoaithanh/giaitoan/internal/screen"
	"github.com/hoaithanh/giaitoan/internal/screens/result"
	"github.com/hoaithanh/giaitoan/internal/screens/solve"
	"github.com/hoaithanh/giaitoan/internal/ui/layout"
	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// Options wires the solver and export settings into the TUI.
type Options struct {
	Solver solve.Solver
	// Model is shown in the header.
	Model     string
	Timeout   time.Duration
	ExportDir string
	PDFFont   string
}

// clearToastMsg hides the toast with the matching sequence number.
type clearToastMsg struct {
	seq int
}

const helpText = "Tab: đổi chế độ · Ctrl+E: đề mẫu · Enter: giải · Ctrl+T: giao diện · Ctrl+C: thoát"

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	model  string
	width  int
	height int

	toast    *screen.ToastMsg
	toastSeq int
}

// newAppModel creates a new AppModel with the solve screen.
func newAppModel(opts Options) AppModel {
	solveScreen := solve.New(opts.Solver, solve.Options{
		Timeout: opts.Timeout,
		Result: result.Options{
			ExportDir: opts.ExportDir,
			PDFFont:   opts.PDFFont,
		},
	})
	return AppModel{
		router: router.New(solveScreen),
		model:  opts.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ToastMsg:
		m.toastSeq++
		m.toast = &msg
		seq := m.toastSeq
		return m, tea.Tick(screen.ToastDuration, func(time.Time) tea.Msg {
			return clearToastMsg{seq: seq}
		})

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			theme.Toggle()
			return m, nil
		case "f1":
			return m, screen.Toast(helpText, false)
		case "?":
			if !m.capturesText() {
				return m, screen.Toast(helpText, false)
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturesText reports whether the active screen wants printable keys.
func (m AppModel) capturesText() bool {
	c, ok := m.router.Active().(interface{ CapturesText() bool })
	return ok && c.CapturesText()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render composes the full frame: header, active screen, toast and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := theme.Current.Name
	if m.model != "" {
		status = m.model + " · " + status
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footerHints = append(footerHints,
		layout.KeyHint{Key: "Ctrl+T", Description: "Giao diện"},
		layout.KeyHint{Key: "F1", Description: "Trợ giúp"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"},
	)
	footer := layout.RenderFooter(footerHints, m.width)
	if m.toast != nil {
		footer = layout.RenderToast(m.toast.Text, m.toast.Error, m.width) + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
