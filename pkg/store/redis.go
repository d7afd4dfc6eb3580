package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a [RedisStore].
type RedisOptions struct {
	// Addr is the host:port of the server.
	Addr string
	// Password must match the server's requirepass setting, if any.
	Password string
	// DB is selected after connecting.
	DB int
}

// RedisStore stores values in Redis with native key expiration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, o RedisOptions) (*RedisStore, error) {
	if o.Addr == "" {
		return nil, fmt.Errorf("store/redis: connection address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store/redis: error connecting to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get is equivalent to the Redis `GET key` command.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		v, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			return redisErr(err)
		}
		data = v
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store/redis: get %s: %w", key, err)
	}
	return data, true, nil
}

// Set is equivalent to the Redis `SET key value [PX ttl]` command.
// A ttl of zero or less means the key has no expiration time.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	err := RetryWithBackoff(ctx, func() error {
		return redisErr(s.client.Set(ctx, key, data, ttl).Err())
	})
	if err != nil {
		return fmt.Errorf("store/redis: set %s: %w", key, err)
	}
	return nil
}

// Delete is equivalent to the Redis `DEL key` command.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	err := RetryWithBackoff(ctx, func() error {
		return redisErr(s.client.Del(ctx, key).Err())
	})
	if err != nil {
		return fmt.Errorf("store/redis: delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisErr marks connection-level failures as retryable.
func redisErr(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) {
		return Retryable(err)
	}
	return err
}

var _ Store = (*RedisStore)(nil)
