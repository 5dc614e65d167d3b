// Package memory provides in-process implementations of outbound ports,
// used by the mock backend and in development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/homeservice/marketplace/internal/core/ports"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// StorageProvider keeps every visitor's namespace in one map. Expired
// entries are dropped lazily on read.
type StorageProvider struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewStorageProvider() *StorageProvider {
	return &StorageProvider{entries: make(map[string]entry), now: time.Now}
}

// ForClient returns the namespace of clientID.
func (p *StorageProvider) ForClient(clientID string) ports.Storage {
	return &Storage{provider: p, prefix: clientID + ":"}
}

// Storage is a single visitor's view over a StorageProvider.
type Storage struct {
	provider *StorageProvider
	prefix   string
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	p := s.provider
	full := s.prefix + key

	p.mu.RLock()
	e, ok := p.entries[full]
	p.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !p.now().Before(e.expiresAt) {
		p.mu.Lock()
		if cur, still := p.entries[full]; still && cur == e {
			delete(p.entries, full)
		}
		p.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Storage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	p := s.provider
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = p.now().Add(ttl)
	}
	p.mu.Lock()
	p.entries[s.prefix+key] = e
	p.mu.Unlock()
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	p := s.provider
	p.mu.Lock()
	delete(p.entries, s.prefix+key)
	p.mu.Unlock()
	return nil
}
