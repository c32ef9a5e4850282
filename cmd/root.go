package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jjenkins/rimun/internal/config"
	"github.com/jjenkins/rimun/internal/logging"
	"github.com/jjenkins/rimun/internal/service"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	apiURL   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "rimun",
	Short: "Query the RIMUN conference API",
	Long: `rimun reads forums, delegates, committees, sessions and posts from the
RIMUN API and prints them as JSON, or serves them as a read-only web viewer.

The API location comes from RIMUN_API_URL (default http://127.0.0.1:8081)
and can be overridden with --api-url.

Examples:
  # Check the API is up
  rimun health

  # Accepted delegates of session 3
  rimun delegates --session 3 --status-application accepted

  # Browse the data
  rimun serve --port 8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cfg = c
		logger = logging.New(logging.ParseLevel(cfg.LogLevel), cfg.Environment)
		slog.SetDefault(logger)
		return nil
	},
}

// loadConfig reads the environment, applies any flags given on cmd and only
// then validates, so a flag can replace a bad env value
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("api-url") {
		c.APIURL = apiURL
	}
	if f.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if f.Changed("port") {
		c.Port = port
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return c, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "RIMUN API base URL (overrides RIMUN_API_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *service.RimunClient {
	return service.NewRimunClient(cfg.APIURL,
		service.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		service.WithLogger(logger),
	)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
