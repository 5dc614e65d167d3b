package ports

import (
	"context"
	"time"
)

// Storage is one visitor's durable key/value namespace.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key. A ttl of zero keeps it until deleted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StorageProvider hands out the storage namespace of a visitor.
type StorageProvider interface {
	ForClient(clientID string) Storage
}
