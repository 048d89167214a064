package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/soloelec/invsheet/pkg/inventory"
	"github.com/soloelec/invsheet/pkg/snapshot"
)

func testLoader() *Loader {
	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)
	return NewLoader(log)
}

func testStore() *inventory.Store {
	s := inventory.NewStore()
	s.Upsert("A1", inventory.Patch{Designation: inventory.StringPtr("Widget"), Qty: inventory.IntPtr(3), Price: inventory.FloatPtr(1)})
	s.Upsert("B2", inventory.Patch{Designation: inventory.StringPtr("Cable"), Qty: inventory.IntPtr(5), Price: inventory.FloatPtr(9)})
	return s
}

func TestFetchAndApply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"company":"Solo Electronique","inventory":[
			{"ref":"A1","price":2.5,"note":"restocked"},
			{"ref":"ZZ","price":99,"note":"unknown ref"}
		]}`))
	}))
	defer srv.Close()

	l := testLoader()
	snap, err := l.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	store := testStore()
	recomputes := 0
	store.SetRecomputeHook(func(inventory.Totals) { recomputes++ })

	updated := l.Apply(snap, store)
	if updated != 1 {
		t.Fatalf("expected 1 update, got %d", updated)
	}

	r, _ := store.Get("A1")
	if r.Price != 2.5 || r.Note != "restocked" {
		t.Fatalf("price/note not merged: %+v", r)
	}
	// Other fields stay untouched.
	if r.Designation != "Widget" || r.Qty != 3 {
		t.Fatalf("merge touched protected fields: %+v", r)
	}
	// Refs absent locally are not created.
	if store.Has("ZZ") {
		t.Fatal("unknown ref must not be created")
	}
	if recomputes != 1 {
		t.Fatalf("recompute hook fired %d times, want 1", recomputes)
	}
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><head><title>404: Not Found</title></head><body></body></html>"))
	}))
	defer srv.Close()

	l := testLoader()
	_, err := l.Fetch(context.Background(), srv.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != 404 {
		t.Fatalf("expected status 404, got %d", fe.Status)
	}
	if fe.Title != "404: Not Found" {
		t.Fatalf("expected page title in error, got %q", fe.Title)
	}
}

func TestFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"inventory": [`))
	}))
	defer srv.Close()

	l := testLoader()
	_, err := l.Fetch(context.Background(), srv.URL)

	var pe *snapshot.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFetchNetworkError(t *testing.T) {
	l := testLoader()
	_, err := l.Fetch(context.Background(), "http://127.0.0.1:1/nothing")

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestRawURL(t *testing.T) {
	got := RawURL("soloelec", "inventory-manager", "main", "data/inventory-data.json")
	want := "https://raw.githubusercontent.com/soloelec/inventory-manager/main/data/inventory-data.json"
	if got != want {
		t.Fatalf("RawURL: got %s", got)
	}
}
