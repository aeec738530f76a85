package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parts-finder/internal/search/model"
)

// Upload is one published dataset. Version changes on every re-upload and,
// together with ID, identifies the dataset for caching.
type Upload struct {
	ID           string
	Version      string
	OriginalName string
	UploadedAt   time.Time
	Dataset      *model.Dataset
}

// entry holds the current Upload behind an atomic pointer: readers see the
// old dataset or the new one, never a mix.
type entry struct {
	cur atomic.Pointer[Upload]
}

// Store keeps uploaded datasets in memory until they expire.
type Store struct {
	mu     sync.RWMutex
	items  map[string]*entry
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func New(ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		items:  make(map[string]*entry),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Put publishes ds under a fresh id.
func (s *Store) Put(name string, ds *model.Dataset) Upload {
	u := s.newUpload(uuid.NewString(), name, ds)
	e := &entry{}
	e.cur.Store(u)

	s.mu.Lock()
	s.items[u.ID] = e
	s.mu.Unlock()
	return *u
}

// Replace swaps the dataset of an existing, unexpired id.
func (s *Store) Replace(id, name string, ds *model.Dataset) (Upload, error) {
	e, err := s.live(id)
	if err != nil {
		return Upload{}, err
	}
	u := s.newUpload(id, name, ds)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[id] != e {
		return Upload{}, fmt.Errorf("%w: file id %q expired", model.ErrDatasetUnavailable, id)
	}
	e.cur.Store(u)
	return *u, nil
}

// Get returns the current upload for id, or ErrDatasetUnavailable when it
// is unknown or expired.
func (s *Store) Get(id string) (Upload, error) {
	e, err := s.live(id)
	if err != nil {
		return Upload{}, err
	}
	return *e.cur.Load(), nil
}

func (s *Store) newUpload(id, name string, ds *model.Dataset) *Upload {
	return &Upload{
		ID:           id,
		Version:      uuid.NewString(),
		OriginalName: name,
		UploadedAt:   s.now(),
		Dataset:      ds,
	}
}

func (s *Store) live(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown file id %q", model.ErrDatasetUnavailable, id)
	}
	if s.expired(e.cur.Load()) {
		if s.dropExpired(id, e) {
			return nil, fmt.Errorf("%w: file id %q expired", model.ErrDatasetUnavailable, id)
		}
	}
	return e, nil
}

// dropExpired re-checks e under the write lock and reports whether id is
// gone. A Replace that landed after the caller's check keeps the entry.
func (s *Store) dropExpired(id string, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[id] != e {
		return true // already swept
	}
	if !s.expired(e.cur.Load()) {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *Store) expired(u *Upload) bool {
	return s.ttl > 0 && s.now().Sub(u.UploadedAt) > s.ttl
}

// Len counts entries, expired ones included until the next Sweep.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep drops expired uploads and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.items {
		if s.expired(e.cur.Load()) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info().Int("removed", n).Int("left", s.Len()).Msg("expired uploads swept")
			}
		}
	}
}
