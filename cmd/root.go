package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoaithanh/giaitoan/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "giaitoan",
	Short: "Giải toán THPT bằng AI",
	Long:  "giaitoan — solves Vietnamese high-school math problems from a photo, a PDF or typed text.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context, which aborts an in-flight solve or stops the web server.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GIAITOAN_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GIAITOAN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
