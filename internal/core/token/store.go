// Package token keeps the visitor's bearer credential and decodes the claims
// it carries.
package token

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/ports"
)

// StorageKey is the storage key the raw credential lives under.
const StorageKey = "auth-token"

const scheme = "Bearer "

var schemePrefix = regexp.MustCompile(`(?i)^(?:bearer\s*)+`)

// Normalize strips any case-insensitive Bearer prefix (repeated or not,
// with any trailing whitespace) and prepends exactly one canonical one.
func Normalize(raw string) string {
	return scheme + strip(raw)
}

// strip returns the bare credential without scheme or surrounding space.
func strip(raw string) string {
	return strings.TrimSpace(schemePrefix.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// Store reads and writes the credential of one visitor. A nil storage
// stands for an environment without client storage: reads find nothing
// and writes are no-ops.
type Store struct {
	storage ports.Storage
	log     zerolog.Logger
}

func NewStore(storage ports.Storage, log zerolog.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Get returns the normalized credential, or false when there is none.
// Storage failures are logged and reported as absence.
func (s *Store) Get(ctx context.Context) (string, bool) {
	if s.storage == nil {
		return "", false
	}
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("token read failed")
		return "", false
	}
	if !ok {
		return "", false
	}
	return Normalize(raw), true
}

// Set stores raw as-is; normalization happens on read.
func (s *Store) Set(ctx context.Context, raw string) error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Set(ctx, StorageKey, raw, 0)
}

func (s *Store) Remove(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Delete(ctx, StorageKey)
}
