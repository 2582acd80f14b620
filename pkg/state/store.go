// Package state implements the shared context store: process-wide,
// key-partitioned mutable state that conditions and hooks read and
// merge-update during rule evaluation. The store maps a string key to a
// one-level sub-mapping of string to value; updates merge into the
// sub-mapping rather than replacing it.
package state

import (
	"sync"

	"github.com/arthur-debert/reactor/pkg/logging"
)

// Store is a concurrency-safe context store. A single coarse lock
// guards the whole store; contention is low because merges are small
// and rule evaluation never holds the lock across resolver or sink
// calls.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]interface{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string]map[string]interface{}),
	}
}

// ReadAll returns a snapshot of the entire store. The snapshot is a
// two-level copy, so callers can hand it to condition evaluation and
// template resolution while merges proceed concurrently.
func (s *Store) ReadAll() map[string]map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// Merge merges updates into the sub-mapping for key and returns a
// snapshot of the full store after the merge, so one round-trip can
// both update and read current state. An absent key gets an empty
// sub-mapping first; sub-keys not present in updates keep their prior
// value. An empty key is a pure read and changes nothing.
func (s *Store) Merge(key string, updates map[string]interface{}) map[string]map[string]interface{} {
	if key == "" {
		return s.ReadAll()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.data[key]
	if !exists {
		sub = make(map[string]interface{})
		s.data[key] = sub
	}
	for k, v := range updates {
		sub[k] = v
	}

	logger := logging.GetLogger("state")
	logger.Debug().
		Str("key", key).
		Int("updated", len(updates)).
		Int("size", len(sub)).
		Msg("merged context updates")

	return s.snapshot()
}

// Get returns a snapshot of the sub-mapping for key, or nil when the
// key is absent.
func (s *Store) Get(key string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.data[key]
	if !exists {
		return nil
	}

	copied := make(map[string]interface{}, len(sub))
	for k, v := range sub {
		copied[k] = v
	}
	return copied
}

// Keys returns the store's top-level keys in unspecified order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// snapshot copies both map levels. Values themselves are shared; the
// store never nests sub-mappings deeper than one level.
func (s *Store) snapshot() map[string]map[string]interface{} {
	copied := make(map[string]map[string]interface{}, len(s.data))
	for key, sub := range s.data {
		subCopy := make(map[string]interface{}, len(sub))
		for k, v := range sub {
			subCopy[k] = v
		}
		copied[key] = subCopy
	}
	return copied
}
