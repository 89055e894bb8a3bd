package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes as JSON values whose key TTL matches the code expiry.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisStore stores codes under the "jobhub:otp:" key prefix.
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "jobhub:otp:"}
}

func (s *RedisStore) key(k Key) string { return s.prefix + k.String() }

func (s *RedisStore) Put(ctx context.Context, key Key, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("otp encode: %w", err)
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := s.rdb.Set(ctx, s.key(key), b, ttl).Err(); err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key Key) (Record, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("otp get: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, fmt.Errorf("otp decode: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}
