package logs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/export"
)

// ExportCSV renders the log as CSV, newest-first. The Details column is a
// JSON dump of the full entry. Every cell is double-quote wrapped; embedded
// quotes are not escaped, the same documented limitation as the inventory
// CSV export.
func (m *Manager) ExportCSV() string {
	var b strings.Builder
	b.WriteString("ID,Timestamp,Action,User,Details\n")
	for _, e := range m.entries {
		dump, err := json.Marshal(e)
		if err != nil {
			dump = []byte("{}")
		}
		fmt.Fprintf(&b, "\"%d\",\"%s\",\"%s\",\"%s\",\"%s\"\n", e.ID, e.Timestamp, e.Action, e.UserID, dump)
	}
	return b.String()
}

// ExportJSON renders the log as a pretty-printed array, newest-first.
func (m *Manager) ExportJSON() (string, error) {
	entries := m.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DownloadExport hands the log in the given format ("csv" or "json") to the
// sink, named logs_{date}.{format}.
func (m *Manager) DownloadExport(sink export.Sink, format string, now time.Time) error {
	var content string
	switch format {
	case "csv":
		content = m.ExportCSV()
	case "json":
		var err error
		if content, err = m.ExportJSON(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	filename := fmt.Sprintf("logs_%s.%s", utils.DateStamp(now), format)
	return sink.Download([]byte(content), filename, export.MimeText)
}
