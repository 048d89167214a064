package whttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("unexpected user agent: %s", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	res, err := Get(context.Background(), nil, srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != 200 || string(res.Body) != `{"ok":true}` {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.HTMLTitle != "" {
		t.Fatalf("JSON body must not yield an HTML title: %q", res.HTMLTitle)
	}
}

func TestGetHTMLTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html><head><title>\n  Maintenance\n</title></head><body>down</body></html>"))
	}))
	defer srv.Close()

	res, err := Get(context.Background(), nil, srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != 503 {
		t.Fatalf("status: %d", res.StatusCode)
	}
	if res.HTMLTitle != "Maintenance" {
		t.Fatalf("title: %q", res.HTMLTitle)
	}
}
