package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/backup"
	"github.com/soloelec/invsheet/pkg/inventory"
	"github.com/soloelec/invsheet/pkg/logs"
	"github.com/soloelec/invsheet/pkg/remote"
	"github.com/soloelec/invsheet/pkg/storage"
)

// session is the composition root: one per command invocation, holding the
// open database, the in-memory sheet and the components built around them.
// Components receive their collaborators explicitly; nothing here is a
// package-level singleton.
type session struct {
	db     *storage.DB
	lock   *utils.DBLock
	store  *inventory.Store
	cache  *backup.Cache
	loader *remote.Loader
	logman *logs.Manager
}

// openSession opens (and locks, when mutating) the database and loads the
// sheet into memory.
func openSession(ctx context.Context, mutating bool) (*session, error) {
	dbPath, _ := rootCmd.PersistentFlags().GetString("dbpath")
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}

	s := &session{}
	if mutating {
		lock, err := utils.NewDBLock(dbPath)
		if err != nil {
			return nil, err
		}
		if err := lock.Lock(); err != nil {
			return nil, err
		}
		s.lock = lock
	}

	db, err := storage.Open(absPath)
	if err != nil {
		s.close()
		return nil, err
	}
	s.db = db

	records, err := db.LoadSheet(ctx)
	if err != nil {
		s.close()
		return nil, err
	}
	s.store = inventory.NewStore()
	for _, r := range records {
		rec := r
		s.store.Upsert(rec.Ref, inventory.Patch{
			Designation: &rec.Designation,
			Qty:         &rec.Qty,
			Price:       &rec.Price,
			Note:        &rec.Note,
			Image:       &rec.Image,
			Timestamp:   &rec.Timestamp,
		})
	}
	s.store.SetRecomputeHook(func(t inventory.Totals) {
		utils.Log.WithFields(map[string]interface{}{
			"items": t.Items,
			"qty":   t.Quantity,
			"value": t.Value,
		}).Debug("totals recomputed")
	})

	s.cache = backup.NewCache(db, utils.Log)
	s.loader = remote.NewLoader(utils.Log)
	s.logman = logs.NewManager(ctx, db, viper.GetString("userid"), utils.Log)
	return s, nil
}

// saveSheet writes the in-memory sheet back to the database.
func (s *session) saveSheet(ctx context.Context) error {
	return s.db.SaveSheet(ctx, s.store.Records())
}

func (s *session) close() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
}
