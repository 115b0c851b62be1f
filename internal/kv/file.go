package kv

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/emeraldmart/storefront/internal/config"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	fileMode      = 0o644
	dirMode       = 0o755
	maxWriteRetry = 3 * time.Second
)

// FileStore is a file-backed Store. The whole keyspace is held in memory and
// written through to a single JSON file on every Set/Delete. A corrupt or
// missing file on open is recovered by starting from an empty keyspace; the
// in-memory map stays authoritative for the session when writes fail.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	data   map[string]jsoniter.RawMessage
	log    *logger.Logger
	closed bool
}

// NewFileStore opens (or creates) the store file at the configured path
func NewFileStore(cfg *config.Configuration, log *logger.Logger) (*FileStore, error) {
	s := &FileStore{
		path: cfg.Storage.Path,
		data: make(map[string]jsoniter.RawMessage),
		log:  log,
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to prepare storage directory").
			Mark(ierr.ErrStorage)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, ierr.WithError(err).
				WithHint("Failed to read storage file").
				Mark(ierr.ErrStorage)
		}
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// Recoverable: treat a corrupt blob as absent and keep going
		log.Errorw("storage file is corrupt, starting empty",
			"path", s.path, "error", err)
		s.data = make(map[string]jsoniter.RawMessage)
	}

	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = jsoniter.RawMessage(value)
	return s.persistLocked()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.persistLocked()
}

func (s *FileStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.persistLocked()
}

// persistLocked writes the whole keyspace to disk via a temp file and an
// atomic rename so a crash mid-write never corrupts the previous state.
// Transient write failures are retried with exponential backoff.
func (s *FileStore) persistLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to serialize stored state").
			Mark(ierr.ErrStorage)
	}

	writeOnce := func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, raw, fileMode); err != nil {
			return err
		}
		return os.Rename(tmp, s.path)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWriteRetry

	if err := backoff.Retry(writeOnce, policy); err != nil {
		s.log.Errorw("failed to persist storage file",
			"path", s.path, "error", err)
		return ierr.WithError(err).
			WithHint("Failed to persist stored state").
			Mark(ierr.ErrStorage)
	}

	return nil
}
