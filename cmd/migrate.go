package cmd

import (
	"log"

	"pharmacy-manager/core/config"
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the store to the current schema version",
	Long:  `Opens the store, applies every pending migration step and reports the resulting schema version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		st, err := store.Open(cfg.Store, schema.Current())
		if err != nil {
			return err
		}
		defer st.Close()

		logg.Info("Store migrated",
			zap.String("driver", cfg.Store.Driver),
			zap.Int("schema_version", st.Version()),
			zap.Strings("collections", st.Collections()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
