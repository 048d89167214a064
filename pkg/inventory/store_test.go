package inventory

import "testing"

func TestUpsertMergesFields(t *testing.T) {
	s := NewStore()
	s.Upsert("A1", Patch{Designation: StringPtr("Widget"), Qty: IntPtr(3), Price: FloatPtr(2.5)})
	s.Upsert("A1", Patch{Note: StringPtr("fragile")})

	r, ok := s.Get("A1")
	if !ok {
		t.Fatal("expected record A1")
	}
	if r.Designation != "Widget" || r.Qty != 3 || r.Price != 2.5 || r.Note != "fragile" {
		t.Fatalf("unexpected record after merge: %+v", r)
	}

	// A later partial update must not clobber untouched fields.
	s.Upsert("A1", Patch{Price: FloatPtr(3.75)})
	r, _ = s.Get("A1")
	if r.Price != 3.75 || r.Designation != "Widget" || r.Note != "fragile" {
		t.Fatalf("partial update clobbered fields: %+v", r)
	}
}

func TestUpsertCoercion(t *testing.T) {
	s := NewStore()
	s.Upsert("B2", Patch{Qty: IntPtr(-4), Price: FloatPtr(-1.5)})
	r, _ := s.Get("B2")
	if r.Qty != 0 || r.Price != 0 {
		t.Fatalf("negative qty/price should coerce to 0, got %+v", r)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected missing record")
	}
}

func TestAllInsertionOrder(t *testing.T) {
	s := NewStore()
	for _, ref := range []string{"C3", "A1", "B2"} {
		s.Upsert(ref, Patch{Qty: IntPtr(1)})
	}
	s.Upsert("A1", Patch{Qty: IntPtr(2)}) // update must not reorder

	var got []string
	for r := range s.All() {
		got = append(got, r.Ref)
	}
	want := []string{"C3", "A1", "B2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}

	// The sequence must be restartable.
	n := 0
	for range s.All() {
		n++
	}
	if n != 3 {
		t.Fatalf("second iteration saw %d records", n)
	}
}

func TestTotals(t *testing.T) {
	s := NewStore()
	s.Upsert("A1", Patch{Qty: IntPtr(3), Price: FloatPtr(2.5)})
	s.Upsert("B2", Patch{Qty: IntPtr(2), Price: FloatPtr(10)})

	got := s.Totals()
	if got.Items != 2 || got.Quantity != 5 || got.Value != 27.5 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestRecomputeHook(t *testing.T) {
	s := NewStore()
	s.Upsert("A1", Patch{Qty: IntPtr(1), Price: FloatPtr(4)})

	calls := 0
	var last Totals
	s.SetRecomputeHook(func(tt Totals) {
		calls++
		last = tt
	})

	s.Recompute()
	if calls != 1 || last.Value != 4 {
		t.Fatalf("recompute hook: calls=%d last=%+v", calls, last)
	}
}

func TestRecordsIsACopy(t *testing.T) {
	s := NewStore()
	s.Upsert("A1", Patch{Note: StringPtr("orig")})
	recs := s.Records()
	recs[0].Note = "mutated"
	if r, _ := s.Get("A1"); r.Note != "orig" {
		t.Fatal("Records() must return copies")
	}
}
