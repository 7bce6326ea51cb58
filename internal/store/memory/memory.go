// Package memory provides the in-memory keyed store. It backs tests and
// is the default backend when no database is configured.
package memory

import (
	"context"
	"sync"

	"shuttersync/internal/store"
)

type Store struct {
	mu         sync.Mutex
	partitions map[string]map[string][]byte
}

func New() *Store {
	return &Store{partitions: make(map[string]map[string][]byte)}
}

func (s *Store) Get(_ context.Context, partition, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.partitions[partition]
	if !ok {
		return nil, store.ErrNotFound
	}
	value, ok := keys[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Set(_ context.Context, partition, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.partitions[partition]
	if !ok {
		keys = make(map[string][]byte)
		s.partitions[partition] = keys
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	keys[key] = stored
	return nil
}

var _ store.KeyedStore = (*Store)(nil)
