package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/electomaps/turnoutmap/internal/config"
	"github.com/electomaps/turnoutmap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the turnout map server",
	Long: `Loads the geography and imported turnout data, then serves the JSON
API, SVG map renders and the interactive WebSocket endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		srv, err := server.New(cfg)
		if err != nil {
			return err
		}

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-done
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
