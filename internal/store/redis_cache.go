package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/qrshare/internal/shortlink"
)

const cachePrefix = "cache:short:"

// RedisCacheRepository wraps a Repository with Redis caching for reads.
type RedisCacheRepository struct {
	store  shortlink.Repository
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortlink.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Save stores a record in the underlying store and updates the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, rec *shortlink.Record) error {
	if err := r.store.Save(ctx, rec); err != nil {
		return err
	}

	// Write-through: a colliding code must not keep serving the old record
	r.cacheRecord(ctx, rec)

	return nil
}

// GetByCode retrieves a record by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Record, error) {
	if rec, err := r.getFromCache(ctx, code); err == nil {
		return rec, nil
	}

	rec, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheRecord(ctx, rec)

	return rec, nil
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortlink.Code) (*shortlink.Record, error) {
	result, err := r.client.HGetAll(ctx, cachePrefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortlink.ErrNotFound
	}

	rec := &shortlink.Record{
		Code:    code,
		Content: result["content"],
		Kind:    shortlink.Kind(result["type"]),
	}

	if ts, ok := result["created_at"]; ok {
		if millis, err := strconv.ParseInt(ts, 10, 64); err == nil {
			rec.CreatedAt = time.UnixMilli(millis).UTC()
		}
	}

	if ts, ok := result["expires_at"]; ok {
		if millis, err := strconv.ParseInt(ts, 10, 64); err == nil && millis > 0 {
			rec.ExpiresAt = time.UnixMilli(millis).UTC()
		}
	}

	return rec, nil
}

// cacheTTL keeps a cached entry from outliving the record it mirrors.
func (r *RedisCacheRepository) cacheTTL(rec *shortlink.Record) time.Duration {
	ttl := r.ttl

	if !rec.ExpiresAt.IsZero() {
		remaining := rec.ExpiresAt.Sub(r.now())
		if ttl <= 0 || remaining < ttl {
			ttl = remaining
		}
	}

	return ttl
}

func (r *RedisCacheRepository) cacheRecord(ctx context.Context, rec *shortlink.Record) {
	ttl := r.cacheTTL(rec)
	if ttl <= 0 {
		return
	}

	var expiresAt int64
	if !rec.ExpiresAt.IsZero() {
		expiresAt = rec.ExpiresAt.UnixMilli()
	}

	key := cachePrefix + string(rec.Code)

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]interface{}{
		"content":    rec.Content,
		"type":       string(rec.Kind),
		"created_at": rec.CreatedAt.UnixMilli(),
		"expires_at": expiresAt,
	})
	pipe.PExpire(ctx, key, ttl)

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

var _ shortlink.Repository = (*RedisCacheRepository)(nil)
