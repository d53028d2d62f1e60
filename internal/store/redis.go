package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// RedisStore keeps the seen-set as a JSON array under a single string key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore parses a redis:// URL and creates a client. Connections are
// made on first use.
func NewRedisStore(url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	return NewRedisStoreFromClient(redis.NewClient(opts), key), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Name implements SeenStore.
func (s *RedisStore) Name() string { return "redis" }

// Close implements SeenStore.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load reads the key. A missing key is an empty set.
func (s *RedisStore) Load(ctx context.Context) (domain.SeenSet, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewSeenSet(), nil
		}
		return nil, fmt.Errorf("reading redis key %s: %w", s.key, err)
	}
	return decodeIDs(val)
}

// Save overwrites the key with the full set. The key never expires.
func (s *RedisStore) Save(ctx context.Context, ids domain.SeenSet) error {
	data, err := encodeIDs(ids)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing redis key %s: %w", s.key, err)
	}
	return nil
}
