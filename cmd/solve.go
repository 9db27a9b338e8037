package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hoaithanh/giaitoan/internal/export"
	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/problem"
	"github.com/hoaithanh/giaitoan/internal/render"
	"github.com/spf13/cobra"
)

// errSolveFailed makes the process exit non-zero after the failure has
// been printed.
var errSolveFailed = errors.New("no solution")

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one problem and print the solution",
	Example: `  giaitoan solve --text "Giải phương trình x^2 - 5x + 6 = 0"
  giaitoan solve --file de-thi.pdf --pdf loi-giai.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		path, _ := cmd.Flags().GetString("file")
		raw, _ := cmd.Flags().GetBool("raw")
		pdfOut, _ := cmd.Flags().GetString("pdf")
		width, _ := cmd.Flags().GetInt("width")

		draft, label, err := draftFromFlags(text, path)
		if err != nil {
			return err
		}
		in, err := draft.Submit()
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := llm.WithRequestID(llm.WithChannel(cmd.Context(), "cli"), uuid.NewString())
		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}

		res := d.solver.Solve(ctx, in)
		out := render.Display(res)
		if !raw {
			out = render.Terminal(out, width)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		if !res.OK() {
			return errSolveFailed
		}

		if pdfOut != "" {
			opts := d.export.Options()
			opts.Problem = label
			if err := export.WriteFile(pdfOut, res.Solution, opts); err != nil {
				return fmt.Errorf("export PDF: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Đã lưu", pdfOut)
		}
		return nil
	},
}

// draftFromFlags builds the draft for exactly one of --text and --file.
// label names the problem in exported PDFs.
func draftFromFlags(text, path string) (*problem.Draft, string, error) {
	switch {
	case text != "" && path != "":
		return nil, "", errors.New("use either --text or --file, not both")
	case path != "":
		f, err := problem.FileFromPath(path)
		if err != nil {
			return nil, "", err
		}
		mode := problem.ModeImage
		if problem.ModePDF.Accepts(f.MediaType) {
			mode = problem.ModePDF
		}
		d := problem.NewDraft(mode)
		d.SetFile(f)
		return d, f.Name, nil
	default:
		d := problem.NewDraft(problem.ModeText)
		d.SetText(text)
		return d, strings.TrimSpace(text), nil
	}
}

func init() {
	solveCmd.Flags().StringP("text", "t", "", "Problem text")
	solveCmd.Flags().StringP("file", "f", "", "Image or PDF containing the problems")
	solveCmd.Flags().Bool("raw", false, "Print the Markdown as returned by the model")
	solveCmd.Flags().String("pdf", "", "Also export the solution to this PDF file")
	solveCmd.Flags().Int("width", 100, "Wrap width for terminal output")
}
