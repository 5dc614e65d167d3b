package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homeservice/marketplace/internal/core/ports"
)

const keyPrefix = "client"

// StorageProvider keeps visitor storage in Redis.
// Key format: client:<client_id>:<key>
type StorageProvider struct {
	client *redis.Client
}

func NewStorageProvider(client *redis.Client) *StorageProvider {
	return &StorageProvider{client: client}
}

func (p *StorageProvider) ForClient(clientID string) ports.Storage {
	return &Storage{client: p.client, clientID: clientID}
}

// Storage is one visitor's namespace.
type Storage struct {
	client   *redis.Client
	clientID string
}

func (s *Storage) key(k string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, s.clientID, k)
}

func (s *Storage) Get(ctx context.Context, k string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage get %s: %w", k, err)
	}
	return v, true, nil
}

// Set writes value; a zero ttl means the key never expires.
func (s *Storage) Set(ctx context.Context, k, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(k), value, ttl).Err(); err != nil {
		return fmt.Errorf("storage set %s: %w", k, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, k string) error {
	if err := s.client.Del(ctx, s.key(k)).Err(); err != nil {
		return fmt.Errorf("storage delete %s: %w", k, err)
	}
	return nil
}
