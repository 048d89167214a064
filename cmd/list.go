package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the inventory sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer s.close()

		if s.store.Len() == 0 {
			fmt.Println("The sheet is empty. Add records with `invsheet set`.")
			return nil
		}

		currency := viper.GetString("currency")

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Ref", "Designation", "Qty", "Price", "Total", "Note"})
		for r := range s.store.All() {
			total := float64(r.Qty) * r.Price
			t.AppendRow(table.Row{r.Ref, r.Designation, r.Qty, r.Price, total, r.Note})
		}
		totals := s.store.Totals()
		t.AppendFooter(table.Row{"TOTAL", "", totals.Quantity, "", fmt.Sprintf("%.2f %s", totals.Value, currency), ""})
		t.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
