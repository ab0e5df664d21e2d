package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix prefixes every snippet key.
const RedisKeyPrefix = "graphclip:snippet:"

// RedisStore keeps snippets as plain string values.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects to the server at rawURL, e.g.
// "redis://:password@localhost:6379/0", and pings it.
func NewRedisStore(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := ping(ctx, func(ctx context.Context) error { return client.Ping(ctx).Err() }); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get reads a snippet.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", name, err)
	}
	return data, true, nil
}

// Put writes a snippet without expiry.
func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, redisKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}

// Delete removes a snippet.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, redisKey(name)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", name, err)
	}
	return nil
}

// List scans the snippet keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, RedisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), RedisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(name string) string {
	return RedisKeyPrefix + name
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
