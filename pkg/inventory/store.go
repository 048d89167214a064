package inventory

import (
	"iter"
	"math"
)

// Store is the in-memory sheet: at most one record per ref, kept in
// insertion order. It is single-threaded by design; the CLI never mutates it
// from more than one goroutine.
type Store struct {
	order []string
	byRef map[string]*Record

	recompute func(Totals)
}

func NewStore() *Store {
	return &Store{byRef: make(map[string]*Record)}
}

// SetRecomputeHook registers the collaborator invoked by Recompute after
// bulk updates (remote load, backup restore). Bulk operations call it at
// most once, never per record.
func (s *Store) SetRecomputeHook(fn func(Totals)) {
	s.recompute = fn
}

// Recompute invokes the registered hook with fresh totals. No-op when no
// hook is set.
func (s *Store) Recompute() {
	if s.recompute != nil {
		s.recompute(s.Totals())
	}
}

// Upsert merges the patch into the record for ref, creating it if absent.
// Nil patch fields leave the existing value unchanged. Qty and Price go
// through the standard coercion rule.
func (s *Store) Upsert(ref string, p Patch) *Record {
	r, ok := s.byRef[ref]
	if !ok {
		r = &Record{Ref: ref}
		s.byRef[ref] = r
		s.order = append(s.order, ref)
	}
	if p.Designation != nil {
		r.Designation = *p.Designation
	}
	if p.Qty != nil {
		r.Qty = CoerceQty(*p.Qty)
	}
	if p.Price != nil {
		r.Price = CoercePrice(*p.Price)
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Timestamp != nil {
		r.Timestamp = *p.Timestamp
	}
	return r
}

// Get returns a copy of the record for ref, and whether it exists.
func (s *Store) Get(ref string) (Record, bool) {
	r, ok := s.byRef[ref]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Has reports whether a record exists for ref.
func (s *Store) Has(ref string) bool {
	_, ok := s.byRef[ref]
	return ok
}

// Len returns the number of records in the sheet.
func (s *Store) Len() int {
	return len(s.order)
}

// All returns a restartable sequence over record copies in insertion order.
func (s *Store) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, ref := range s.order {
			if !yield(*s.byRef[ref]) {
				return
			}
		}
	}
}

// Records returns a fresh slice of record copies in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, *s.byRef[ref])
	}
	return out
}

// Totals sums the sheet.
func (s *Store) Totals() Totals {
	t := Totals{Items: len(s.order)}
	for _, ref := range s.order {
		r := s.byRef[ref]
		t.Quantity += r.Qty
		t.Value += float64(r.Qty) * r.Price
	}
	return t
}

// CoerceQty applies the single coercion rule for quantities: negative
// values coerce to 0.
func CoerceQty(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// CoercePrice applies the single coercion rule for prices: negative or
// non-finite values coerce to 0.
func CoercePrice(p float64) float64 {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}
