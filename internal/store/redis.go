package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/qrshare/internal/shortlink"
)

// RedisStore is a Redis implementation of shortlink.Repository.
// Records are stored as JSON strings under "short:<code>" with a native expiry.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a new Redis-backed short link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (r *RedisStore) Save(ctx context.Context, rec *shortlink.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	var ttl time.Duration
	if !rec.ExpiresAt.IsZero() {
		ttl = rec.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return nil
		}
	}

	return r.client.Set(ctx, rec.Code.Key(), payload, ttl).Err()
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Record, error) {
	pipe := r.client.Pipeline()
	getCmd := pipe.Get(ctx, code.Key())
	ttlCmd := pipe.PTTL(ctx, code.Key())

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	payload, err := getCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	var rec shortlink.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", code, err)
	}

	rec.Code = code

	if ttl, err := ttlCmd.Result(); err == nil && ttl > 0 {
		rec.ExpiresAt = r.now().Add(ttl)
	}

	return &rec, nil
}

var _ shortlink.Repository = (*RedisStore)(nil)
