package cmd

import (
	"flyer-ingest/bootstrap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingest scheduler and the HTTP API",
	Long: `Run the periodic ZIP ingestion (INGEST_ZIP_CODES every INGEST_INTERVAL)
and serve /health, /metrics and the job status endpoints until SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.IsSet("server.port") {
			cfg.Server.Port = viper.GetInt("server.port")
		}

		obs := bootstrap.InitObservability(cmd.Context())
		defer obs.Close()

		return bootstrap.Serve(cmd.Context(), cfg, obs)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP port (overrides SERVER_PORT)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
