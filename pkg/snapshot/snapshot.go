// Package snapshot defines the hosted inventory snapshot format and its
// parser. The same tolerant parsing rules back both the remote loader and
// the local backup restore path.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/inventory"
)

const Version = "1.0.0"

// Snapshot is a complete point-in-time export of the sheet plus metadata.
type Snapshot struct {
	LastUpdated string             `json:"lastUpdated"`
	Version     string             `json:"version"`
	Company     string             `json:"company"`
	Inventory   []inventory.Record `json:"inventory"`
}

// ParseError reports a body that is not valid JSON or does not match the
// snapshot shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}

// Build produces a snapshot of the given records, stamped with now.
func Build(records []inventory.Record, company string, now time.Time) Snapshot {
	return Snapshot{
		LastUpdated: utils.ISOTimestamp(now),
		Version:     Version,
		Company:     company,
		Inventory:   records,
	}
}

// Encode renders the snapshot as pretty-printed JSON, the shape Parse
// accepts back.
func (s Snapshot) Encode() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parse decodes a snapshot body. Records without a ref are dropped; numeric
// fields go through the standard coercion (non-numeric or negative become 0).
// A missing or non-array inventory field is a shape error.
func Parse(body []byte) (Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return Snapshot{}, &ParseError{Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	inv := root.Get("inventory")
	if !inv.Exists() || !inv.IsArray() {
		return Snapshot{}, &ParseError{Reason: "missing inventory array"}
	}

	snap := Snapshot{
		LastUpdated: root.Get("lastUpdated").String(),
		Version:     root.Get("version").String(),
		Company:     root.Get("company").String(),
	}
	for _, item := range inv.Array() {
		ref := item.Get("ref").String()
		if ref == "" {
			continue
		}
		snap.Inventory = append(snap.Inventory, inventory.Record{
			Ref:         ref,
			Designation: item.Get("designation").String(),
			Qty:         inventory.CoerceQty(int(item.Get("qty").Int())),
			Price:       inventory.CoercePrice(item.Get("price").Float()),
			Note:        item.Get("note").String(),
		})
	}
	return snap, nil
}
