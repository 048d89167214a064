package inventory

// Record is a single inventory line item. Ref is the stable identity; every
// other field is mutable.
type Record struct {
	Ref         string  `json:"ref"`
	Designation string  `json:"designation"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
	Note        string  `json:"note"`
	// Image holds an opaque reference to the attached picture (typically a
	// base64 data URI). Empty means no image.
	Image string `json:"image,omitempty"`
	// Timestamp is the ISO-8601 time of the last update.
	Timestamp string `json:"timestamp,omitempty"`
}

// Patch carries a partial update for a record. Nil fields are left unchanged
// by Upsert.
type Patch struct {
	Designation *string
	Qty         *int
	Price       *float64
	Note        *string
	Image       *string
	Timestamp   *string
}

// Totals aggregates the whole sheet: distinct items, summed quantity and the
// summed qty*price value.
type Totals struct {
	Items    int
	Quantity int
	Value    float64
}

// Pointer helpers for building patches.
func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func FloatPtr(f float64) *float64 { return &f }
