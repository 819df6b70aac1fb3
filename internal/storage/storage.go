package storage

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Storage is a durable key-value store. Values are JSON-encoded on write and
// decoded on read. A value that is missing or no longer decodable reads back
// as absent rather than as an error, so callers always get a usable default.
type Storage interface {
	// Save serializes value and writes it under key.
	Save(ctx context.Context, key string, value any) error
	// Load reads key into dest. It returns false when the key is absent or
	// its payload cannot be decoded; dest is left untouched in that case.
	Load(ctx context.Context, key string, dest any) (bool, error)
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

type memoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage returns a process-local Storage. It backs tests and runs
// without a Redis connection; contents do not survive a restart.
func NewMemoryStorage() Storage {
	return &memoryStorage{data: make(map[string]string)}
}

func (s *memoryStorage) Save(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = string(payload)
	s.mu.Unlock()
	return nil
}

func (s *memoryStorage) Load(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	payload, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		log.Warnf("Discarding undecodable value for key %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *memoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
