package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/retireplan/spendgo/internal/domain"
)

// defaultKeyPrefix namespaces schedule keys so the store can share a Redis
// instance with other applications.
const defaultKeyPrefix = "spendgo:schedule:"

// RedisStore is a Redis-backed ScheduleStore. Schedules serialize to JSON
// values; a zero TTL keeps them until deleted.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore connects a store to the Redis instance at addr. The
// connection is lazy; the first command dials.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
	}
}

// NewRedisStoreFromClient wraps an existing client, for callers that manage
// their own connection options.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, keyPrefix: defaultKeyPrefix, ttl: ttl}
}

// Ping verifies the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) key(name string) string {
	return r.keyPrefix + name
}

// Save stores the schedule under the given name, replacing any previous
// value and refreshing the TTL.
func (r *RedisStore) Save(ctx context.Context, name string, schedule *domain.SpendingSchedule) error {
	if name == "" {
		return fmt.Errorf("schedule name cannot be empty")
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode schedule %s: %w", name, err)
	}
	if err := r.client.Set(ctx, r.key(name), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store schedule %s: %w", name, err)
	}
	return nil
}

// Load returns the schedule stored under the given name.
func (r *RedisStore) Load(ctx context.Context, name string) (*domain.SpendingSchedule, error) {
	payload, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s: %w", name, err)
	}
	var schedule domain.SpendingSchedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", name, err)
	}
	return &schedule, nil
}

// List returns the stored schedule names in sorted order.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), r.keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the schedule stored under the given name.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	removed, err := r.client.Del(ctx, r.key(name)).Result()
	if err != nil {
		return fmt.Errorf("delete schedule %s: %w", name, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
