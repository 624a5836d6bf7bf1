// Package autosave keeps a journal of map documents in badger so that work
// survives a crash between explicit saves.
package autosave

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
	"github.com/milk9111/gridedit/levels"
)

var ErrNotFound = errors.New("autosave: snapshot not found")

var errClosed = errors.New("autosave: store closed")

const keyPrefix = "snapshot:"

// Snapshot is one autosaved map document.
type Snapshot struct {
	Name    string
	Data    []byte
	SavedAt time.Time
}

// Map decodes the snapshot document.
func (s Snapshot) Map() (*levels.Map, error) {
	return levels.UnmarshalDocument(s.Data)
}

type record struct {
	SavedAt time.Time `json:"saved_at"`
	Data    []byte    `json:"data"`
}

type Store struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder

	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// Open opens (or creates) a store under dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("autosave: open badger: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("autosave: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("autosave: zstd decoder: %w", err)
	}
	return &Store{db: db, enc: enc, dec: dec, now: time.Now}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

func key(name string) []byte {
	return []byte(keyPrefix + name)
}

// Put stores doc under name, replacing any earlier snapshot. A positive ttl
// lets badger expire the snapshot.
func (s *Store) Put(name string, doc []byte, ttl time.Duration) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errClosed
	}

	data, err := json.Marshal(record{SavedAt: s.now().UTC(), Data: s.enc.EncodeAll(doc, nil)})
	if err != nil {
		return fmt.Errorf("autosave: encode %s: %w", name, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(name), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("autosave: put %s: %w", name, err)
	}
	return nil
}

// PutMap stores the document form of m.
func (s *Store) PutMap(name string, m *levels.Map, ttl time.Duration) error {
	doc, err := m.MarshalDocument()
	if err != nil {
		return fmt.Errorf("autosave: marshal %s: %w", name, err)
	}
	return s.Put(name, doc, ttl)
}

func (s *Store) Get(name string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Snapshot{}, errClosed
	}

	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		snap, err = s.decode(name, item)
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("autosave: get %s: %w", name, err)
	}
	return snap, nil
}

func (s *Store) decode(name string, item *badger.Item) (Snapshot, error) {
	var rec record
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return Snapshot{}, err
	}
	doc, err := s.dec.DecodeAll(rec.Data, nil)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Name: name, Data: doc, SavedAt: rec.SavedAt}, nil
}

// Names lists the stored snapshot names in sorted order.
func (s *Store) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()[len(keyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("autosave: list: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Latest returns the most recently saved snapshot.
func (s *Store) Latest() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Snapshot{}, errClosed
	}

	var latest Snapshot
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			snap, err := s.decode(string(item.Key()[len(keyPrefix):]), item)
			if err != nil {
				return err
			}
			if !found || snap.SavedAt.After(latest.SavedAt) {
				latest, found = snap, true
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("autosave: latest: %w", err)
	}
	if !found {
		return Snapshot{}, ErrNotFound
	}
	return latest, nil
}

// Delete removes a snapshot. Deleting a missing snapshot is not an error.
func (s *Store) Delete(name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(name))
	})
	if err != nil {
		return fmt.Errorf("autosave: delete %s: %w", name, err)
	}
	return nil
}
