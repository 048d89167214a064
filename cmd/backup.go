package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soloelec/invsheet/pkg/storage"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage the local backup of the sheet",
}

var backupSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current sheet to the local backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer s.close()

		if !s.cache.Save(ctx, s.store) {
			// Degraded, not fatal: the sheet itself is intact.
			fmt.Println("Backup not available: the durable store rejected the write.")
			return nil
		}
		s.logman.Add("backup_saved", map[string]any{"records": s.store.Len()})
		fmt.Printf("Backup saved (%d records).\n", s.store.Len())
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Merge the local backup back into the sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer s.close()

		restored, err := s.cache.Restore(ctx, s.store)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println("No local backup found.")
				return nil
			}
			return err
		}
		if err := s.saveSheet(ctx); err != nil {
			return err
		}
		s.logman.Add("backup_restored", map[string]any{"records": restored})
		fmt.Printf("Restored %d records from the local backup.\n", restored)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupSaveCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
