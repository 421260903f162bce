package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

// MemoryCacheRepository is a process-lifetime cache used when Redis is not
// configured. Entries live until invalidated or expired; values round-trip
// through JSON so semantics match the Redis repository exactly.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

type memoryCacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryCacheRepository constructs an empty in-memory cache.
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[string]memoryCacheEntry),
		now:     time.Now,
	}
}

// Get unmarshals the cached value into dest or reports a miss.
func (r *MemoryCacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return appErrors.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return appErrors.ErrCacheMiss
	}

	return json.Unmarshal(entry.payload, dest)
}

// Set stores the value under key. A non-positive TTL means no expiry.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := memoryCacheEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

// DeleteByPattern removes entries whose key matches the glob-style pattern.
// Only the trailing-star form ("detail:*") is needed here.
func (r *MemoryCacheRepository) DeleteByPattern(_ context.Context, pattern string) error {
	prefix, wildcard := strings.CutSuffix(pattern, "*")

	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.entries {
		if (wildcard && strings.HasPrefix(key, prefix)) || key == pattern {
			delete(r.entries, key)
		}
	}
	return nil
}
