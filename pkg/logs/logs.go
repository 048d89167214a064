// Package logs keeps the capacity-bounded activity log: newest-first,
// persisted after every addition, with filtering, statistics and export.
package logs

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/soloelec/invsheet/internal/utils"
	"github.com/soloelec/invsheet/pkg/storage"
)

// MaxLogs bounds the log. The oldest entry is evicted once the bound is
// exceeded.
const MaxLogs = 10000

// Entry is one immutable activity record. Details carries arbitrary extra
// fields; in the JSON shape they sit at the top level next to the fixed
// ones.
type Entry struct {
	ID        int64
	Timestamp string
	Action    string
	UserID    string
	Details   map[string]any
}

// MarshalJSON flattens Details into the top-level object:
// {"id": ..., "timestamp": ..., "action": ..., "userId": ..., <details>...}.
func (e Entry) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, 4+len(e.Details))
	for k, v := range e.Details {
		flat[k] = v
	}
	flat["id"] = e.ID
	flat["timestamp"] = e.Timestamp
	flat["action"] = e.Action
	flat["userId"] = e.UserID
	return json.Marshal(flat)
}

// Filters selects entries by exact match. Zero fields do not filter.
type Filters struct {
	Action string
	UserID string
}

// Stats summarizes the log.
type Stats struct {
	TotalLogs    int
	ActionCounts map[string]int
	DateRange    DateRange
}

// DateRange holds the chronologically first and last timestamps; both are
// empty when the log is empty.
type DateRange struct {
	Oldest string
	Newest string
}

// Manager owns the in-memory log and its persistence. A nil db makes the
// manager memory-only; persistence failures never reach the caller either
// way.
type Manager struct {
	db     *storage.DB
	userID string
	log    *logrus.Logger

	entries []Entry // newest-first
	lastID  int64

	now func() time.Time
}

// NewManager builds a manager for the given user, resuming any log
// persisted under storage.LogsKey. An unreadable persisted log starts a
// fresh one.
func NewManager(ctx context.Context, db *storage.DB, userID string, log *logrus.Logger) *Manager {
	m := &Manager{db: db, userID: userID, log: log, now: time.Now}
	if db == nil {
		return m
	}

	data, err := db.GetValue(ctx, storage.LogsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.WithError(err).Warn("could not load activity log, starting fresh")
		}
		return m
	}
	m.entries = parseEntries(data)
	for _, e := range m.entries {
		if e.ID > m.lastID {
			m.lastID = e.ID
		}
	}
	return m
}

func parseEntries(data string) []Entry {
	parsed := gjson.Parse(data)
	if !parsed.IsArray() {
		return nil
	}
	var out []Entry
	for _, item := range parsed.Array() {
		if !item.IsObject() {
			continue
		}
		e := Entry{
			ID:        item.Get("id").Int(),
			Timestamp: item.Get("timestamp").String(),
			Action:    item.Get("action").String(),
			UserID:    item.Get("userId").String(),
		}
		item.ForEach(func(key, value gjson.Result) bool {
			switch key.String() {
			case "id", "timestamp", "action", "userId":
			default:
				if e.Details == nil {
					e.Details = make(map[string]any)
				}
				e.Details[key.String()] = value.Value()
			}
			return true
		})
		out = append(out, e)
	}
	return out
}

// Add records one action. The returned entry carries a strictly increasing
// id (wall-clock milliseconds, bumped past the previous id on collision).
// Add never fails: a rejected persist is logged and the in-memory log keeps
// going.
func (m *Manager) Add(action string, details map[string]any) Entry {
	now := m.now()
	id := now.UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id

	e := Entry{
		ID:        id,
		Timestamp: utils.ISOTimestamp(now),
		Action:    action,
		UserID:    m.userID,
		Details:   maps.Clone(details),
	}

	m.entries = append([]Entry{e}, m.entries...)
	if len(m.entries) > MaxLogs {
		trimmed := make([]Entry, MaxLogs)
		copy(trimmed, m.entries)
		m.entries = trimmed
	}
	m.persist()
	return e
}

func (m *Manager) persist() {
	if m.db == nil {
		return
	}
	data, err := json.Marshal(m.entries)
	if err != nil {
		m.log.WithError(err).Warn("could not serialize activity log")
		return
	}
	if err := m.db.SetValue(context.Background(), storage.LogsKey, string(data)); err != nil {
		m.log.WithError(err).Warn("could not persist activity log")
	}
}

// Len returns how many entries the log currently holds.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Filter returns a fresh copy of the entries matching all set filter
// fields, newest-first. Empty filters return everything. Details maps are
// cloned so the result cannot reach back into the log.
func (m *Manager) Filter(f Filters) []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		e.Details = maps.Clone(e.Details)
		out = append(out, e)
	}
	return out
}

// Statistics computes totals, per-action counts and the covered date range.
func (m *Manager) Statistics() Stats {
	s := Stats{
		TotalLogs:    len(m.entries),
		ActionCounts: make(map[string]int),
	}
	for _, e := range m.entries {
		s.ActionCounts[e.Action]++
	}
	if len(m.entries) > 0 {
		// Newest-first storage: the first element is the most recent.
		s.DateRange.Newest = m.entries[0].Timestamp
		s.DateRange.Oldest = m.entries[len(m.entries)-1].Timestamp
	}
	return s
}
