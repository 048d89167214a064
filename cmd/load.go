package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soloelec/invsheet/pkg/remote"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Fetch the hosted snapshot and merge prices/notes into the sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = remote.RawURL(
				viper.GetString("remote.owner"),
				viper.GetString("remote.repo"),
				viper.GetString("remote.branch"),
				viper.GetString("remote.path"),
			)
		}

		s, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer s.close()

		snap, err := s.loader.Fetch(ctx, url)
		if err != nil {
			s.logman.Add("github_load_failed", map[string]any{"url": url, "error": err.Error()})
			return err
		}

		updated := s.loader.Apply(snap, s.store)
		if err := s.saveSheet(ctx); err != nil {
			return err
		}
		s.logman.Add("github_load", map[string]any{
			"url":     url,
			"updated": updated,
			"remote":  len(snap.Inventory),
		})

		fmt.Printf("Loaded snapshot from %s: %d of %d remote records merged.\n", url, updated, len(snap.Inventory))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().String("url", "", "Snapshot URL (overrides the remote.* config)")
}
