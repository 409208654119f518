package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mytheresa/orders-report/config"
	"github.com/mytheresa/orders-report/logging"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orders",
	Short: "orders seeds the sample shop database and reports on it.",
	Long: `orders manages the sample order-management store: it creates the schema,
fills it with reproducible sample data and renders the top clients and
bestsellers reports.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default application.yml)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration and installs the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.Level())
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
