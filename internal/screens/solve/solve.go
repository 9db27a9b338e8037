// Package solve is the input screen: pick a mode, enter a problem or a
// file path, and submit it to the solver.
package solve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/problem"
	"github.com/hoaithanh/giaitoan/internal/router"
	"github.com/hoaithanh/giaitoan/internal/screen"
	"github.com/hoaithanh/giaitoan/internal/screens/result"
	"github.com/hoaithanh/giaitoan/internal/solver"
	"github.com/hoaithanh/giaitoan/internal/ui/components"
	"github.com/hoaithanh/giaitoan/internal/ui/layout"
	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

// Solver is the pipeline this screen submits to.
type Solver interface {
	Solve(ctx context.Context, in problem.Input) solver.Result
}

// Options configures the screen and the result screens it opens.
type Options struct {
	// Timeout bounds one solve. Zero means no deadline.
	Timeout time.Duration
	Result  result.Options
}

// solvedMsg carries the outcome of a submission.
type solvedMsg struct {
	Result  solver.Result
	Problem string
}

const loadingID = 1

// SolveScreen holds the draft and the submit state.
type SolveScreen struct {
	solver Solver
	opts   Options

	draft      *problem.Draft
	input      components.TextInput
	button     components.Button
	loading    components.Loading
	sample     int
	fileErr    string
	submitting bool
	width      int
}

var (
	_ screen.Screen  = (*SolveScreen)(nil)
	_ screen.Resumer = (*SolveScreen)(nil)
)

// New creates the screen in image mode, the first tab.
func New(s Solver, opts Options) *SolveScreen {
	scr := &SolveScreen{
		solver:  s,
		opts:    opts,
		draft:   problem.NewDraft(problem.ModeImage),
		loading: components.NewLoading(loadingID, "Đang xử lý", 40),
		sample:  -1,
	}
	scr.button = components.NewButton("Giải bài toán", scr.submit)
	scr.input = scr.newInput()
	return scr
}

func (s *SolveScreen) Init() tea.Cmd {
	return s.input.Init()
}

// Resume refocuses the input when the result screen is closed.
func (s *SolveScreen) Resume() tea.Cmd {
	return s.input.Init()
}

func (s *SolveScreen) Title() string {
	return "Giải bài toán"
}

// CapturesText reports that printable keys go to the input field.
func (s *SolveScreen) CapturesText() bool { return true }

// Draft exposes the pending submission.
func (s *SolveScreen) Draft() *problem.Draft { return s.draft }

// Submitting reports whether a request is in flight.
func (s *SolveScreen) Submitting() bool { return s.submitting }

func (s *SolveScreen) KeyHints() []layout.KeyHint {
	if s.submitting {
		return []layout.KeyHint{{Key: "…", Description: "Đang xử lý"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Đổi chế độ"},
		{Key: "Enter", Description: "Giải"},
	}
	if s.draft.Mode() == problem.ModeText {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Đề mẫu"})
	}
	return hints
}

func (s *SolveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case solvedMsg:
		return s.handleSolved(msg)

	case components.LoadingTickMsg:
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SolveScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "tab":
		s.switchMode(s.draft.Mode().Next())
		return s, s.input.Init()
	case "shift+tab":
		s.switchMode(prevMode(s.draft.Mode()))
		return s, s.input.Init()
	case "ctrl+e":
		if s.draft.Mode() == problem.ModeText {
			s.sample = (s.sample + 1) % len(problem.Samples)
			s.input.SetValue(problem.Samples[s.sample].Text)
			s.syncDraft()
		}
		return s, nil
	case "enter":
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.syncDraft()
	return s, cmd
}

func (s *SolveScreen) switchMode(m problem.Mode) {
	s.draft.SwitchMode(m)
	s.sample = -1
	s.fileErr = ""
	s.input = s.newInput()
}

func (s *SolveScreen) newInput() components.TextInput {
	if s.draft.Mode() == problem.ModeText {
		return components.NewTextInput("Đề bài", "Nhập đề bài toán...", s.width)
	}
	placeholder := "Đường dẫn tới ảnh (jpg, png, webp...)"
	if s.draft.Mode() == problem.ModePDF {
		placeholder = "Đường dẫn tới file PDF"
	}
	return components.NewTextInput("Tệp", placeholder, s.width)
}

// syncDraft copies the input field into the draft. In file modes the path
// is resolved on every change so the preview stays current.
func (s *SolveScreen) syncDraft() {
	if s.draft.Mode() == problem.ModeText {
		s.draft.SetText(s.input.Value())
		return
	}

	s.draft.Clear()
	s.fileErr = ""
	path := cleanPath(s.input.Value())
	if path == "" {
		return
	}
	f, err := problem.FileFromPath(path)
	if err != nil {
		s.fileErr = "Không tìm thấy tệp"
		return
	}
	s.draft.SetFile(f)
}

// submit validates the draft and starts the solve in the background.
func (s *SolveScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.syncDraft()
	in, err := s.draft.Submit()
	if err != nil {
		return screen.Toast(err.Error(), true)
	}

	s.submitting = true
	s.button.Disabled = true
	var tick tea.Cmd
	s.loading, tick = s.loading.Start()

	label := in.Text()
	if f, ok := in.File(); ok {
		label = f.Name
	}
	return tea.Batch(tick, s.solveCmd(in, label))
}

func (s *SolveScreen) solveCmd(in problem.Input, label string) tea.Cmd {
	sv, timeout := s.solver, s.opts.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		ctx = llm.WithRequestID(llm.WithChannel(ctx, "tui"), uuid.NewString())
		return solvedMsg{Result: sv.Solve(ctx, in), Problem: label}
	}
}

// handleSolved opens the result screen. A successful solve clears the
// draft; a failed one keeps it so the user can resubmit.
func (s *SolveScreen) handleSolved(msg solvedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	s.button.Disabled = false
	s.loading = s.loading.Stop()

	if msg.Result.OK() {
		s.draft.Clear()
		s.sample = -1
		s.input.Reset()
	}

	next := result.New(msg.Result, msg.Problem, s.opts.Result)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SolveScreen) View(width, height int) string {
	s.width = min(width-4, 100)
	s.input.Width = s.width

	var sections []string
	sections = append(sections, components.NewTabs(s.draft.Mode()).View())
	sections = append(sections, s.input.View())

	if s.draft.Mode() == problem.ModeText {
		sections = append(sections, s.renderSamples())
	} else {
		sections = append(sections, s.renderPreview())
	}

	if s.submitting {
		sections = append(sections, s.loading.View())
	} else {
		sections = append(sections, s.button.View())
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(1, 2).Width(width).Height(height).Render(content)
}

func (s *SolveScreen) renderSamples() string {
	parts := make([]string, 0, len(problem.Samples))
	for i, sm := range problem.Samples {
		if i == s.sample {
			parts = append(parts, theme.Selected.Render("● "+sm.Label))
		} else {
			parts = append(parts, theme.Hint.Render("○ "+sm.Label))
		}
	}
	return theme.Hint.Render("Đề mẫu (Ctrl+E): ") + strings.Join(parts, "  ")
}

func (s *SolveScreen) renderPreview() string {
	if s.fileErr != "" {
		return theme.Incorrect.Render(s.fileErr)
	}
	f := s.draft.File()
	if f == nil {
		return theme.Hint.Render("Kéo thả tệp vào cửa sổ terminal hoặc gõ đường dẫn.")
	}
	line := fmt.Sprintf("%s  ·  %s  ·  %s", f.Name, f.SizeLabel(), f.MediaType)
	if !s.draft.Mode().Accepts(f.MediaType) {
		return theme.Incorrect.Render("✗ " + line)
	}
	return theme.Correct.Render("✓ " + line)
}

func prevMode(m problem.Mode) problem.Mode {
	for i, mode := range problem.Modes {
		if mode == m {
			return problem.Modes[(i+len(problem.Modes)-1)%len(problem.Modes)]
		}
	}
	return problem.Modes[0]
}

// cleanPath undoes the quoting terminals add when a file is dropped in.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"'`)
	p = strings.ReplaceAll(p, `\ `, " ")
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
