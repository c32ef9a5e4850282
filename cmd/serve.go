package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jjenkins/rimun/internal/handlers"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RIMUN viewer web server",
	Long: `Start a read-only web viewer for the RIMUN API.

Every page is rendered from a fresh API call; nothing is stored locally.
The port comes from PORT (default 8080) and can be overridden with --port.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := handlers.NewApp(newClient(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Listen(fmt.Sprintf(":%d", cfg.Port))
		}()

		logger.Info("viewer started", "port", cfg.Port, "api_url", cfg.APIURL)

		select {
		case err := <-errCh:
			return fmt.Errorf("failed to start server: %w", err)
		case <-ctx.Done():
			logger.Info("received interrupt signal, shutting down")
			if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the server on")
}
