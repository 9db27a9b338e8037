package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/hoaithanh/giaitoan/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := web.LoadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		srv := web.New(d.solver, cfg)
		if err := srv.Run(cfg.Addr); err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		<-ctx.Done()
		log.Println("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides GIAITOAN_ADDR)")
}
