package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints totals for the inventory sheet.",
	Long:  "Prints totals for the inventory sheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer s.close()

		if s.store.Len() == 0 {
			fmt.Println("No data in the sheet to generate stats.")
			return nil
		}

		totals := s.store.Totals()
		currency := viper.GetString("currency")

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "ITEMS\tQUANTITY\tVALUE\t")
		fmt.Fprintf(w, "%d\t%d\t%.2f %s\t\n", totals.Items, totals.Quantity, totals.Value, currency)
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
