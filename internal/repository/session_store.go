package repository

import (
	"context"
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/util"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps in-progress game sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *game.Session) error
	Load(ctx context.Context, id string) (*game.Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionStore builds the store named by kind ("memory" or "redis").
func NewSessionStore(kind string, rdb *redis.Client, prefix string, ttl time.Duration) (SessionStore, error) {
	switch kind {
	case util.SessionStoreMemory:
		return NewMemorySessionStore(ttl, time.Minute), nil
	case util.SessionStoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session store needs a redis client")
		}
		return NewRedisSessionStore(rdb, prefix, ttl), nil
	}
	return nil, fmt.Errorf("%w: %q", util.ErrUnknownSessionType, kind)
}

type memoryEntry struct {
	session   game.Session
	expiresAt time.Time
}

// MemorySessionStore is a process-local store. Idle sessions expire after ttl.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemorySessionStore(ttl, sweepEvery time.Duration) *MemorySessionStore {
	st := &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepEvery > 0 {
		go st.sweep(sweepEvery)
	}
	return st
}

func (m *MemorySessionStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.expire()
		case <-m.stop:
			return
		}
	}
}

func (m *MemorySessionStore) expire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
}

// Stop ends the sweeper goroutine.
func (m *MemorySessionStore) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemorySessionStore) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = memoryEntry{session: *s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Load(_ context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		return nil, util.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// RedisSessionStore keeps sessions as JSON values with a sliding TTL,
// so several API instances can serve the same participant.
type RedisSessionStore struct {
	Redis  *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Redis: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisSessionStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisSessionStore) Save(ctx context.Context, s *game.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, r.key(s.ID), data, r.ttl).Err()
}

func (r *RedisSessionStore) Load(ctx context.Context, id string) (*game.Session, error) {
	val, err := r.Redis.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s game.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, r.key(id)).Err()
}
