package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"chatvault/internal/domain"
)

// DefaultRedisPrefix namespaces chat-room records in a shared Redis.
const DefaultRedisPrefix = "chatvault:room:"

// RedisBackend keeps each record as a plain string value under
// prefix+storageKey. Records never expire.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend wraps client. The backend owns client and closes it on Close.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// DialRedis opens a client with opts and verifies the connection with PING.
func DialRedis(ctx context.Context, opts *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (s *RedisBackend) redisKey(key domain.StorageKey) string {
	return s.prefix + string(key)
}

func (s *RedisBackend) Load(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisBackend) Save(ctx context.Context, key domain.StorageKey, data []byte) error {
	return s.client.Set(ctx, s.redisKey(key), data, 0).Err()
}

func (s *RedisBackend) Remove(ctx context.Context, key domain.StorageKey) (bool, error) {
	n, err := s.client.Del(ctx, s.redisKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisBackend) Close() error { return s.client.Close() }

var _ domain.RecordBackend = (*RedisBackend)(nil)
