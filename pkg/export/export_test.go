package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soloelec/invsheet/pkg/inventory"
)

var sample = []inventory.Record{
	{Ref: "A1", Designation: "Widget", Qty: 3, Price: 2.5},
	{Ref: "B2", Designation: "Cable HDMI", Qty: 2, Price: 10},
}

func TestCSVRoundTrip(t *testing.T) {
	out := CSV(sample)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Reference,Designation,Quantite,PrixUnitaire,PrixTotal" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != `"A1","Widget",3,2.5,7.5` {
		t.Fatalf("unexpected row: %s", lines[1])
	}

	// Parse back and check ref, qty, price, total survive.
	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(recs))
	}
	if recs[2][0] != "B2" || recs[2][2] != "2" || recs[2][3] != "10" || recs[2][4] != "20" {
		t.Fatalf("round trip mismatch: %v", recs[2])
	}
}

func TestJSONShape(t *testing.T) {
	out, err := JSON(sample[:1])
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	want := `[
  {
    "ref": "A1",
    "designation": "Widget",
    "qty": 3,
    "price": 2.5,
    "total": 7.5
  }
]`
	if out != want {
		t.Fatalf("JSON output mismatch:\n%s", out)
	}

	// Same input, same bytes.
	again, _ := JSON(sample[:1])
	if again != out {
		t.Fatal("JSON export is not reproducible")
	}
}

func TestReport(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	out := Report(sample, now, "DH")

	if !strings.HasPrefix(out, "RAPPORT D'INVENTAIRE\n==================\n\nDate: 15/01/2024\n") {
		t.Fatalf("unexpected report header:\n%s", out)
	}
	if !strings.Contains(out, "- A1: Widget (Qty: 3, Price: 2.5)\n") {
		t.Fatalf("missing record line:\n%s", out)
	}
	if !strings.HasSuffix(out, "TOTAL: 27.50 DH") {
		t.Fatalf("unexpected total line:\n%s", out)
	}
}

func TestReportEmpty(t *testing.T) {
	out := Report(nil, time.Now(), "DH")
	if !strings.HasSuffix(out, "TOTAL: 0.00 DH") {
		t.Fatalf("empty report total:\n%s", out)
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: filepath.Join(dir, "exports")}

	if err := sink.Download([]byte("hello"), "inventaire.csv", MimeCSV); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "exports", "inventaire.csv"))
	if err != nil || string(data) != "hello" {
		t.Fatalf("written file: %q, %v", data, err)
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if SnapshotFilename(now) != "inventory-data-2024-01-15.json" {
		t.Fatalf("snapshot filename: %s", SnapshotFilename(now))
	}
	if ReportFilename(now) != "rapport-2024-01-15.txt" {
		t.Fatalf("report filename: %s", ReportFilename(now))
	}
	if JSONFilename() != "inventaire.json" {
		t.Fatalf("json filename: %s", JSONFilename())
	}
}
