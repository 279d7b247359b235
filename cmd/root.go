// Package cmd contains the flyer-ingest CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"flyer-ingest/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	envFile string
	cfg     *config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "flyer-ingest",
	Short: "Grocery flyer ingestion pipeline",
	Long: `flyer-ingest rebuilds weekly grocery flyers from CDN tiles, extracts deals
with a vision model and stores flyers and deals per ZIP code.

Example usage:
  flyer-ingest serve                      # Scheduler plus health/metrics/job API
  flyer-ingest run --zip 07001,10001      # One-off ingestion, prints JSON summaries
  flyer-ingest migrate                    # Apply the database schema`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
}

// initConfig loads the dotenv file, then builds the config from the environment.
// Variables already set in the environment win over the file.
func initConfig() error {
	if path := viper.GetString("env_file"); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	return nil
}
