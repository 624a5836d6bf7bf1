package autosave

import (
	"time"

	"github.com/milk9111/gridedit/levels"
)

// Journal decides when the editor's map is written to the store: only after
// the edit counter has advanced and at most once per interval.
type Journal struct {
	store    *Store
	interval time.Duration
	ttl      time.Duration

	saved  uint64
	lastAt time.Time
}

func NewJournal(store *Store, interval, ttl time.Duration) *Journal {
	return &Journal{store: store, interval: interval, ttl: ttl}
}

// Tick stores m under its map name when changes differs from the last stored
// count and the interval has elapsed. It reports whether a snapshot was
// written.
func (j *Journal) Tick(now time.Time, changes uint64, m *levels.Map) (bool, error) {
	if changes == j.saved {
		return false, nil
	}
	if !j.lastAt.IsZero() && now.Sub(j.lastAt) < j.interval {
		return false, nil
	}
	if err := j.store.PutMap(m.MapName, m, j.ttl); err != nil {
		return false, err
	}
	j.saved = changes
	j.lastAt = now
	return true, nil
}

// Discard drops the snapshot for name, typically after an explicit save.
func (j *Journal) Discard(name string) error {
	return j.store.Delete(name)
}
