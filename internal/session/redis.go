package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisStore persists sessions as JSON blobs with a TTL. Read-modify-write
// cycles are guarded by process-local per-id locks, which serializes
// mutations as long as a single backend instance owns the session traffic;
// multi-instance deployments would need a distributed lock and are out of
// scope here.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("zenvia.internal.session")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: tracer,
		locks:  make(map[string]*sync.Mutex),
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *RedisStore) lock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

func (r *RedisStore) load(ctx context.Context, id string) (*Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return New(id), nil
		}
		return nil, fmt.Errorf("session: failed to load %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: failed to decode %s: %w", id, err)
	}
	if s.LastVariation == nil {
		s.LastVariation = make(map[string]string)
	}
	return &s, nil
}

func (r *RedisStore) save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal %s: %w", s.ID, err)
	}
	if err := r.redis.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: failed to persist %s: %w", s.ID, err)
	}
	return nil
}

// Get returns a snapshot of the session for id, creating a default one if
// the id is unseen. The default is not persisted until the first Update.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	ctx, span := r.tracer.Start(ctx, "session.get")
	defer span.End()

	l := r.lock(id)
	l.Lock()
	defer l.Unlock()

	s, err := r.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s, nil
}

// Update applies fn to the session for id and persists the result, under the
// per-id lock.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	ctx, span := r.tracer.Start(ctx, "session.update")
	defer span.End()

	l := r.lock(id)
	l.Lock()
	defer l.Unlock()

	s, err := r.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := r.save(ctx, s); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s, nil
}

// Ping verifies connectivity at startup so a misconfigured Redis fails the
// process instead of every request.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session: redis unreachable: %w", err)
	}
	return nil
}
