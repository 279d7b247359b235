package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"flyer-ingest/bootstrap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ingest flyers for ZIP codes once and print the summaries",
	Long: `Run the pipeline once for the given ZIP codes (or INGEST_ZIP_CODES when
--zip is omitted) and print one JSON summary per ZIP.

Examples:
  flyer-ingest run --zip 07001
  flyer-ingest run --zip 07001,10001`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zips := resolveZipCodes(viper.GetStringSlice("run.zip"), cfg.Ingest.ZipCodes)
		if len(zips) == 0 {
			return fmt.Errorf("no zip codes: pass --zip or set INGEST_ZIP_CODES")
		}

		obs := bootstrap.InitObservability(cmd.Context())
		defer obs.Close()

		deps, cleanup, err := bootstrap.BuildDependencies(cmd.Context(), cfg, obs.Logger)
		if err != nil {
			return err
		}
		defer cleanup()

		summaries, runErr := deps.Ingest.ProcessZipCodes(cmd.Context(), zips)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return fmt.Errorf("write summaries: %w", err)
		}
		return runErr
	},
}

// resolveZipCodes prefers ZIPs given on the command line over configured ones.
func resolveZipCodes(flagZips, configured []string) []string {
	if len(flagZips) > 0 {
		return flagZips
	}
	return configured
}

func init() {
	runCmd.Flags().StringSlice("zip", nil, "ZIP codes to ingest (comma separated)")
	_ = viper.BindPFlag("run.zip", runCmd.Flags().Lookup("zip"))
	rootCmd.AddCommand(runCmd)
}
