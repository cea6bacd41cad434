// Package cli implements the command-line interface for the catalog sync
// service.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/plan4land/tourindex/internal/bootstrap"
	"github.com/plan4land/tourindex/internal/config"
	"github.com/plan4land/tourindex/internal/logger"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "tourindex",
		Short: "Tourism catalog sync and search indexing",
		Long:  `Ingests tourism point-of-interest records from the open-data catalog and publishes them into the search index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to config
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newIndexCommand())
	rootCmd.AddCommand(newRecommendCommand())
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tourindex version %s\n", "1.0.0")
		},
	}
}

// setup loads configuration and creates the logger shared by all commands.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := bootstrap.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
