package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/soloelec/invsheet/pkg/export"
	"github.com/soloelec/invsheet/pkg/logs"
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect and export the activity log",
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print activity log entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer s.close()

		action, _ := cmd.Flags().GetString("action")
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		entries := s.logman.Filter(logs.Filters{Action: action, UserID: user})
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		if len(entries) == 0 {
			fmt.Println("No log entries match.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Timestamp", "Action", "User", "Details"})
		for _, e := range entries {
			details := ""
			if len(e.Details) > 0 {
				if data, err := json.Marshal(e.Details); err == nil {
					details = string(data)
				}
			}
			t.AppendRow(table.Row{e.ID, e.Timestamp, e.Action, e.UserID, details})
		}
		t.Render()
		return nil
	},
}

var logsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print activity log statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer s.close()

		stats := s.logman.Statistics()
		if stats.TotalLogs == 0 {
			fmt.Println("The activity log is empty.")
			return nil
		}

		fmt.Printf("Total entries: %d\n", stats.TotalLogs)
		fmt.Printf("Oldest: %s\n", stats.DateRange.Oldest)
		fmt.Printf("Newest: %s\n\n", stats.DateRange.Newest)

		actions := make([]string, 0, len(stats.ActionCounts))
		for a := range stats.ActionCounts {
			actions = append(actions, a)
		}
		sort.Strings(actions)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "ACTION\tCOUNT\t")
		for _, a := range actions {
			fmt.Fprintf(w, "%s\t%d\t\n", a, stats.ActionCounts[a])
		}
		w.Flush()
		return nil
	},
}

var logsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity log to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer s.close()

		format, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("output")

		if err := s.logman.DownloadExport(export.FileSink{Dir: outDir}, format, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Exported %d log entries.\n", s.logman.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsStatsCmd)
	logsCmd.AddCommand(logsExportCmd)

	logsListCmd.Flags().String("action", "", "Only entries with this action")
	logsListCmd.Flags().String("user", "", "Only entries from this user")
	logsListCmd.Flags().Int("limit", 50, "Maximum entries to print (0 = all)")

	logsExportCmd.Flags().String("format", "csv", "Export format: csv or json")
	logsExportCmd.Flags().StringP("output", "o", "", "Directory for the exported file (default: current directory)")
}
