package cmd

import (
	"fmt"

	"flyer-ingest/driver/flyer_db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the stores, flyers and deals schema",
	Long: `Apply the embedded, idempotent schema to DATABASE_URL. Safe to run on
every deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := flyer_db.NewPool(cmd.Context(), cfg.Database.URL, flyer_db.PoolConfig{MaxConns: 1})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := flyer_db.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
