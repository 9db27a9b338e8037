package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/hoaithanh/giaitoan/internal/problem"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// executeContext runs the command tree with ctx. Cobra keeps the first
// context it hands a subcommand, so every command gets ctx explicitly.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	setContext(rootCmd, ctx)
	t.Cleanup(func() { setContext(rootCmd, nil) })
	return execute(t, args...)
}

func setContext(c *cobra.Command, ctx context.Context) {
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		setContext(sub, ctx)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "giaitoan")
}

func TestDraftFromFlags(t *testing.T) {
	_, _, err := draftFromFlags("x", "y.png")
	assert.Error(t, err)

	d, label, err := draftFromFlags("  x + 1 = 2 ", "")
	require.NoError(t, err)
	assert.Equal(t, problem.ModeText, d.Mode())
	assert.Equal(t, "x + 1 = 2", label)

	d, _, err = draftFromFlags("", "")
	require.NoError(t, err)
	_, err = d.Submit()
	assert.ErrorIs(t, err, problem.ErrNoText)

	path := filepath.Join(t.TempDir(), "de.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	d, label, err = draftFromFlags("", path)
	require.NoError(t, err)
	assert.Equal(t, problem.ModePDF, d.Mode())
	assert.Equal(t, "de.pdf", label)
}

func TestSolveFailureExitsNonZero(t *testing.T) {
	t.Setenv("GIAITOAN_LLM_PROVIDER", "mock")
	db := filepath.Join(t.TempDir(), "events.db")

	// The mock has no canned responses, so the call fails.
	out, err := execute(t, "--db", db, "solve", "--raw", "--text", "1+1")
	require.ErrorIs(t, err, errSolveFailed)
	assert.Contains(t, out, "Đã xảy ra lỗi")
}

func TestSolveCancelledContext(t *testing.T) {
	t.Setenv("GIAITOAN_LLM_PROVIDER", "mock")
	db := filepath.Join(t.TempDir(), "events.db")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeContext(t, ctx, "--db", db, "solve", "--raw", "--text", "1+1")
	require.ErrorIs(t, err, errSolveFailed)
	assert.Contains(t, out, "context canceled")
}

func TestSolveWithoutKey(t *testing.T) {
	for _, k := range []string{"GIAITOAN_LLM_PROVIDER", "GIAITOAN_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	db := filepath.Join(t.TempDir(), "events.db")

	out, err := execute(t, "--db", db, "solve", "--raw", "--text", "1+1")
	require.ErrorIs(t, err, errSolveFailed)
	assert.Contains(t, out, "Khóa API chưa được cấu hình")
}

func TestEventsListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	out, err := execute(t, "--db", db, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No events found.")
}
