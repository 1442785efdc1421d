package session

import (
	"context"
	"errors"
	"sync"

	"movieticket/pkg/cache"
)

// StorageKey is the single fixed key the session is persisted under.
const StorageKey = "currentUser"

// Store is the durable local storage behind the holder. One JSON-serialized
// session object under one fixed key, written on login, removed on logout.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisStore struct {
	cache cache.Service
}

// NewRedisStore persists the session in Redis. No TTL: a stale session
// stays valid until explicit logout, matching the storage contract.
func NewRedisStore(c cache.Service) Store {
	return &redisStore{cache: c}
}

func (r *redisStore) Load(ctx context.Context) (*Session, error) {
	var s Session
	if err := r.cache.Get(ctx, StorageKey, &s); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	return r.cache.Set(ctx, StorageKey, s, 0)
}

func (r *redisStore) Clear(ctx context.Context) error {
	return r.cache.Delete(ctx, StorageKey)
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

type memoryStore struct {
	mu      sync.Mutex
	current *Session
}

// NewMemoryStore keeps the session in process memory. Used when Redis is
// not configured, and by tests.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, nil
	}
	copied := *m.current
	return &copied, nil
}

func (m *memoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.current = &copied
	return nil
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return nil
}
