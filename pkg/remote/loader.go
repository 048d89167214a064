// Package remote pulls a hosted inventory snapshot and merges it into the
// in-memory sheet.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/soloelec/invsheet/pkg/inventory"
	"github.com/soloelec/invsheet/pkg/snapshot"
	"github.com/soloelec/invsheet/pkg/whttp"
)

// NetworkError reports a transport-level failure: DNS, connect, timeout.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch of %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FetchError reports a non-2xx response. Title carries the HTML page title
// when the host answered with an error page.
type FetchError struct {
	Status int
	Title  string
}

func (e *FetchError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("remote returned HTTP %d (%s)", e.Status, e.Title)
	}
	return fmt.Sprintf("remote returned HTTP %d", e.Status)
}

// RawURL builds the raw.githubusercontent.com URL for a hosted snapshot.
func RawURL(owner, repo, branch, path string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, branch, path)
}

// Loader fetches snapshots over HTTPS. One instance is built per session by
// the command layer.
type Loader struct {
	client *retryablehttp.Client
	log    *logrus.Logger
}

func NewLoader(log *logrus.Logger) *Loader {
	client := retryablehttp.NewClient()
	// Any non-2xx is fatal for the call, so retries stay off.
	client.RetryMax = 0
	client.CheckRetry = whttp.NoRetry
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil
	return &Loader{client: client, log: log}
}

// Fetch issues one GET and parses the body. It returns *NetworkError when
// the request itself failed, *FetchError on a non-2xx status and
// *snapshot.ParseError when the body does not decode.
func (l *Loader) Fetch(ctx context.Context, url string) (snapshot.Snapshot, error) {
	l.log.WithField("url", url).Debug("fetching remote snapshot")

	res, err := whttp.Get(ctx, l.client, url)
	if err != nil {
		return snapshot.Snapshot{}, &NetworkError{URL: url, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return snapshot.Snapshot{}, &FetchError{Status: res.StatusCode, Title: res.HTMLTitle}
	}
	return snapshot.Parse(res.Body)
}

// Apply merges the snapshot into the store and returns how many records were
// updated. Only price and note of refs already present in the store are
// overwritten; refs with no local row are skipped, there is nothing to bind
// them to. The recompute hook fires once after the whole batch.
func (l *Loader) Apply(snap snapshot.Snapshot, store *inventory.Store) int {
	updated := 0
	for _, rec := range snap.Inventory {
		if !store.Has(rec.Ref) {
			l.log.WithField("ref", rec.Ref).Debug("skipping unknown ref from snapshot")
			continue
		}
		store.Upsert(rec.Ref, inventory.Patch{
			Price: inventory.FloatPtr(rec.Price),
			Note:  inventory.StringPtr(rec.Note),
		})
		updated++
	}
	store.Recompute()
	return updated
}
