// Package export serializes the sheet to CSV, JSON and a plain-text report,
// and hands the bytes to a download sink.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/inventory"
)

const (
	MimeCSV  = "text/csv"
	MimeJSON = "application/json"
	MimeText = "text/plain"
)

// row is the export shape shared by the CSV and JSON formats.
type row struct {
	Ref         string  `json:"ref"`
	Designation string  `json:"designation"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// CSV renders the records as CSV. String fields are double-quote wrapped,
// numeric fields are not. Embedded double quotes in ref or designation are
// not escaped; that is a documented limitation of the format.
func CSV(records []inventory.Record) string {
	var b strings.Builder
	b.WriteString("Reference,Designation,Quantite,PrixUnitaire,PrixTotal\n")
	for _, r := range records {
		total := float64(r.Qty) * r.Price
		fmt.Fprintf(&b, "\"%s\",\"%s\",%d,%s,%s\n", r.Ref, r.Designation, r.Qty, formatNumber(r.Price), formatNumber(total))
	}
	return b.String()
}

// JSON renders the records as a pretty-printed array of the raw export
// shape. Output is byte-reproducible for a given record sequence.
func JSON(records []inventory.Record) (string, error) {
	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, row{
			Ref:         r.Ref,
			Designation: r.Designation,
			Qty:         r.Qty,
			Price:       r.Price,
			Total:       float64(r.Qty) * r.Price,
		})
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Report renders the human-readable inventory report.
func Report(records []inventory.Record, now time.Time, currency string) string {
	var b strings.Builder
	b.WriteString("RAPPORT D'INVENTAIRE\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Date: %s\n\n", now.Format("02/01/2006"))
	b.WriteString("Elements:\n")
	total := 0.0
	for _, r := range records {
		fmt.Fprintf(&b, "- %s: %s (Qty: %d, Price: %s)\n", r.Ref, r.Designation, r.Qty, formatNumber(r.Price))
		total += float64(r.Qty) * r.Price
	}
	fmt.Fprintf(&b, "\nTOTAL: %.2f %s", total, currency)
	return b.String()
}

// Default export filenames. The snapshot name matches what the remote
// loader expects to find published.
func CSVFilename() string { return "inventaire.csv" }

func JSONFilename() string { return "inventaire.json" }

func SnapshotFilename(now time.Time) string {
	return "inventory-data-" + utils.DateStamp(now) + ".json"
}

func ReportFilename(now time.Time) string { return "rapport-" + utils.DateStamp(now) + ".txt" }

// formatNumber prints a float the shortest exact way: 2.5 stays "2.5",
// whole numbers drop the decimal point.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
