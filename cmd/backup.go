package cmd

import (
	"context"
	"log"

	"pharmacy-manager/core/backup"
	"pharmacy-manager/core/config"
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/storage"
	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var backupKeep int

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a store snapshot to object storage",
	Long:  `Exports every collection as JSON and uploads the snapshot to the configured bucket, then prunes old snapshots.`,
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

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		svc := backup.NewService(st, client, cfg.Storage.Bucket, logg)
		ctx := context.Background()

		count, snapshot, err := svc.Run(ctx)
		if err != nil {
			return err
		}
		logg.Info("Backup uploaded",
			zap.String("snapshot", snapshot),
			zap.Int("collections", count))

		if backupKeep > 0 {
			removed, err := svc.Prune(ctx, backupKeep)
			if err != nil {
				return err
			}
			logg.Info("Old snapshots pruned", zap.Int("removed", removed))
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().IntVar(&backupKeep, "keep", 7, "number of snapshots to keep (0 disables pruning)")
	RootCmd.AddCommand(backupCmd)
}
