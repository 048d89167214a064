package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/inventory"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <ref>",
	Short: "Create or update one inventory record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ref := args[0]

		s, err := openSession(ctx, true)
		if err != nil {
			return err
		}
		defer s.close()

		existed := s.store.Has(ref)

		var p inventory.Patch
		details := map[string]any{"ref": ref}
		if cmd.Flags().Changed("designation") {
			v, _ := cmd.Flags().GetString("designation")
			p.Designation = &v
			details["designation"] = v
		}
		if cmd.Flags().Changed("qty") {
			v, _ := cmd.Flags().GetInt("qty")
			p.Qty = &v
			details["qty"] = inventory.CoerceQty(v)
		}
		if cmd.Flags().Changed("price") {
			v, _ := cmd.Flags().GetFloat64("price")
			p.Price = &v
			details["price"] = inventory.CoercePrice(v)
		}
		if cmd.Flags().Changed("note") {
			v, _ := cmd.Flags().GetString("note")
			p.Note = &v
		}
		if cmd.Flags().Changed("image") {
			v, _ := cmd.Flags().GetString("image")
			p.Image = &v
		}
		now := utils.ISONow()
		p.Timestamp = &now

		s.store.Upsert(ref, p)
		if err := s.saveSheet(ctx); err != nil {
			return err
		}

		action := "record_updated"
		if !existed {
			action = "record_created"
		}
		s.logman.Add(action, details)

		r, _ := s.store.Get(ref)
		fmt.Printf("%s: %s (Qty: %d, Price: %g)\n", r.Ref, r.Designation, r.Qty, r.Price)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().String("designation", "", "Item designation")
	setCmd.Flags().Int("qty", 0, "Quantity in stock")
	setCmd.Flags().Float64("price", 0, "Unit price")
	setCmd.Flags().String("note", "", "Free-form note")
	setCmd.Flags().String("image", "", "Image reference (e.g. a base64 data URI)")
}
