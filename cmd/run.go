package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hoaithanh/giaitoan/internal/app"
	"github.com/hoaithanh/giaitoan/internal/export"
	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/solver"
	"github.com/hoaithanh/giaitoan/internal/store"
	"github.com/spf13/cobra"
)

// deps holds what every front-end needs to solve problems.
type deps struct {
	store   *store.Store
	solver  *solver.Solver
	model   string
	timeout time.Duration
	export  export.Config
}

func (d *deps) Close() error {
	return d.store.Close()
}

// buildDeps opens the store and builds the solver. A missing API key is
// not an error here: the solver reports it on every submission.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cfg, err := llm.LoadConfig()
	if err != nil {
		st.Close()
		return nil, err
	}
	exportCfg, err := export.LoadConfig()
	if err != nil {
		st.Close()
		return nil, err
	}
	d := &deps{store: st, timeout: cfg.Timeout, export: exportCfg}

	solverCfg := solver.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Every submission will report a configuration error.")
		d.solver = solver.New(nil, solverCfg)
		return d, nil
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		d.solver = solver.New(nil, solverCfg)
		return d, nil
	}

	solverCfg.APIKey = cfg.APIKey()
	d.solver = solver.New(provider, solverCfg)
	d.model = provider.ModelID()
	return d, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Solver:    d.solver,
		Model:     d.model,
		Timeout:   d.timeout,
		ExportDir: d.export.Dir,
		PDFFont:   d.export.FontPath,
	})
}
