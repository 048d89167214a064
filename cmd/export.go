package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soloelec/invsheet/pkg/export"
	"github.com/soloelec/invsheet/pkg/snapshot"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:       "export csv|json|snapshot|report",
	Short:     "Export the sheet to a file",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json", "snapshot", "report"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		format := args[0]

		s, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer s.close()

		outDir, _ := cmd.Flags().GetString("output")
		sink := export.FileSink{Dir: outDir}
		records := s.store.Records()
		now := time.Now()

		var filename string
		switch format {
		case "csv":
			filename = export.CSVFilename()
			err = sink.Download([]byte(export.CSV(records)), filename, export.MimeCSV)
		case "json":
			content, jerr := export.JSON(records)
			if jerr != nil {
				return jerr
			}
			filename = export.JSONFilename()
			err = sink.Download([]byte(content), filename, export.MimeJSON)
		case "snapshot":
			// The publishable file the `load` command pulls back later.
			snap := snapshot.Build(records, viper.GetString("company"), now)
			content, serr := snap.Encode()
			if serr != nil {
				return serr
			}
			filename = export.SnapshotFilename(now)
			err = sink.Download([]byte(content), filename, export.MimeJSON)
		case "report":
			filename = export.ReportFilename(now)
			content := export.Report(records, now, viper.GetString("currency"))
			err = sink.Download([]byte(content), filename, export.MimeText)
		default:
			return fmt.Errorf("unknown export format: %s", format)
		}
		if err != nil {
			return err
		}

		s.logman.Add("export_"+format, map[string]any{"records": len(records), "filename": filename})
		fmt.Printf("Exported %d records to %s\n", len(records), filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Directory for the exported file (default: current directory)")
}
