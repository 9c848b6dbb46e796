package idempotency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyCheckout = "idem:checkout:%s:%s"
	TTL         = 24 * time.Hour

	pending = "pending"
)

var ErrInProgress = errors.New("request with this idempotency key is in progress")

// Store remembers the result of a keyed request. Reserve returns the stored
// result when the key was completed before, or reserves the key for the caller.
type Store interface {
	Reserve(ctx context.Context, key string) (result string, reserved bool, err error)
	Complete(ctx context.Context, key, result string) error
	Release(ctx context.Context, key string) error
}

func CheckoutKey(userID, key string) string {
	return fmt.Sprintf(KeyCheckout, userID, key)
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: TTL}
}

func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, pending, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return "", true, nil
	}

	v, err := s.rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired between SETNX and GET
		return s.Reserve(ctx, key)
	case err != nil:
		return "", false, fmt.Errorf("redis get: %w", err)
	case v == pending:
		return "", false, ErrInProgress
	}
	return v, false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, result string) error {
	if err := s.rdb.Set(ctx, key, result, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

type entry struct {
	value   string
	expires time.Time
}

// Memory is a single-process Store used when Redis is not configured.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]entry
	now  func() time.Time
	// expired entries are dropped at most once per sweepEvery
	nextSweep time.Time
}

const sweepEvery = time.Minute

func NewMemory() *Memory {
	return &Memory{ttl: TTL, data: map[string]entry{}, now: time.Now}
}

func (m *Memory) Reserve(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	e, ok := m.data[key]
	if !ok || now.After(e.expires) {
		m.data[key] = entry{value: pending, expires: now.Add(m.ttl)}
		return "", true, nil
	}
	if e.value == pending {
		return "", false, ErrInProgress
	}
	return e.value, false, nil
}

func (m *Memory) sweep(now time.Time) {
	if now.Before(m.nextSweep) {
		return
	}
	for k, e := range m.data {
		if now.After(e.expires) {
			delete(m.data, k)
		}
	}
	m.nextSweep = now.Add(sweepEvery)
}

func (m *Memory) Complete(_ context.Context, key, result string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entry{value: result, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
