package testutil

import (
	"context"
	"sync"

	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/kv"
)

var _ kv.Store = (*InMemoryKVStore)(nil)

// InMemoryKVStore implements kv.Store for tests. Writes can be made to fail
// to exercise the log-and-recover persistence paths.
type InMemoryKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes Set/Delete return a storage error, simulating a
	// full or broken backing store
	FailWrites bool
}

func NewInMemoryKVStore() *InMemoryKVStore {
	return &InMemoryKVStore{
		data: make(map[string][]byte),
	}
}

func (s *InMemoryKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *InMemoryKVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return ierr.NewError("write failed").
			WithHint("Simulated storage failure").
			Mark(ierr.ErrStorage)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *InMemoryKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return ierr.NewError("delete failed").
			WithHint("Simulated storage failure").
			Mark(ierr.ErrStorage)
	}

	delete(s.data, key)
	return nil
}

func (s *InMemoryKVStore) Flush(_ context.Context) error {
	return nil
}

func (s *InMemoryKVStore) Close() error {
	return nil
}

// SetRaw seeds a key directly, bypassing the failure switch; useful for
// planting corrupt blobs
func (s *InMemoryKVStore) SetRaw(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// HasKey reports whether a key is present
func (s *InMemoryKVStore) HasKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}
