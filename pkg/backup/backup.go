// Package backup keeps a durable copy of the sheet's mutable fields in the
// kv store, used when the remote source is unavailable.
package backup

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/soloelec/invsheet/pkg/inventory"
	"github.com/soloelec/invsheet/pkg/snapshot"
	"github.com/soloelec/invsheet/pkg/storage"
)

// entry is the full-record backup shape, one per ref.
type entry struct {
	Price     float64 `json:"price"`
	Note      string  `json:"note"`
	Image     *string `json:"image"`
	Timestamp string  `json:"timestamp"`
}

type Cache struct {
	db  *storage.DB
	log *logrus.Logger
}

func NewCache(db *storage.DB, log *logrus.Logger) *Cache {
	return &Cache{db: db, log: log}
}

// Save writes the backup under storage.BackupKey plus one image key per
// record carrying an image, in a single transaction. It reports whether the
// backup landed; a rejected write is logged and swallowed, the sheet itself
// is unaffected.
func (c *Cache) Save(ctx context.Context, store *inventory.Store) bool {
	backup := make(map[string]entry, store.Len())
	values := make(map[string]string)

	for r := range store.All() {
		e := entry{Price: r.Price, Note: r.Note, Timestamp: r.Timestamp}
		if r.Image != "" {
			img := r.Image
			e.Image = &img
			values[storage.ImageKey(r.Ref)] = r.Image
		}
		backup[r.Ref] = e
	}

	data, err := json.Marshal(backup)
	if err != nil {
		c.log.WithError(err).Warn("backup skipped: could not serialize sheet")
		return false
	}
	values[storage.BackupKey] = string(data)

	if err := c.db.SetValues(ctx, values); err != nil {
		c.log.WithError(err).Warn("backup not available: durable store rejected write")
		return false
	}
	return true
}

// Restore merges the saved backup into the store and returns how many
// records were touched. It accepts both backup generations: the full-record
// map under storage.BackupKey and the legacy price/note map under
// storage.LegacyBackupKey. Fields absent from a backup entry leave the
// in-memory value unchanged. Returns storage.ErrNotFound when no backup was
// ever saved.
func (c *Cache) Restore(ctx context.Context, store *inventory.Store) (int, error) {
	data, err := c.db.GetValue(ctx, storage.BackupKey)
	if errors.Is(err, storage.ErrNotFound) {
		data, err = c.db.GetValue(ctx, storage.LegacyBackupKey)
	}
	if err != nil {
		return 0, err
	}

	if !gjson.Valid(data) {
		return 0, &snapshot.ParseError{Reason: "backup is not valid JSON"}
	}
	root := gjson.Parse(data)
	if !root.IsObject() {
		return 0, &snapshot.ParseError{Reason: "backup is not a ref map"}
	}

	updated := 0
	images := make(map[string]string)
	root.ForEach(func(key, item gjson.Result) bool {
		ref := key.String()
		if !store.Has(ref) {
			return true
		}

		var p inventory.Patch
		if v := item.Get("price"); v.Exists() {
			p.Price = inventory.FloatPtr(inventory.CoercePrice(v.Float()))
		}
		if v := item.Get("note"); v.Exists() {
			p.Note = inventory.StringPtr(v.String())
		}
		if v := item.Get("image"); v.Exists() && v.Type == gjson.String && v.String() != "" {
			p.Image = inventory.StringPtr(v.String())
			images[storage.ImageKey(ref)] = v.String()
		}
		if v := item.Get("timestamp"); v.Exists() {
			p.Timestamp = inventory.StringPtr(v.String())
		}

		store.Upsert(ref, p)
		updated++
		return true
	})

	// Re-seed the per-ref image keys found in the backup. Best effort, same
	// degradation policy as Save.
	if len(images) > 0 {
		if err := c.db.SetValues(ctx, images); err != nil {
			c.log.WithError(err).Warn("could not restore image keys")
		}
	}

	store.Recompute()
	return updated, nil
}
