package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/qrshare/internal/analytics"
)

const (
	countersKey    = "analytics:counters"
	linkKeyPrefix  = "analytics:link:"
	linkStatsTTL   = 8 * 24 * time.Hour
	uploadBytesKey = "upload_bytes"
)

// Redis keeps aggregate counters for analytics events in Redis hashes.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed analytics store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, countersKey, "links_created", 1)
	pipe.HIncrBy(ctx, countersKey, "links_created_"+event.Kind, 1)
	pipe.HSet(ctx, linkKeyPrefix+event.Code, "created_at", event.CreatedAt.UnixMilli(), "resolves", 0)
	pipe.Expire(ctx, linkKeyPrefix+event.Code, linkStatsTTL)

	_, err := pipe.Exec(ctx)

	return err
}

func (r *Redis) SaveLinkResolved(ctx context.Context, event *analytics.LinkResolvedEvent) error {
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, countersKey, "links_resolved_"+event.Source, 1)
	pipe.HIncrBy(ctx, linkKeyPrefix+event.Code, "resolves", 1)
	pipe.HSet(ctx, linkKeyPrefix+event.Code, "last_resolved_at", event.ResolvedAt.UnixMilli())
	pipe.Expire(ctx, linkKeyPrefix+event.Code, linkStatsTTL)

	_, err := pipe.Exec(ctx)

	return err
}

func (r *Redis) SaveUploadPresigned(ctx context.Context, event *analytics.UploadPresignedEvent) error {
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, countersKey, "presigned_"+event.Action, 1)

	if event.Size > 0 {
		pipe.HIncrBy(ctx, countersKey, uploadBytesKey, event.Size)
	}

	_, err := pipe.Exec(ctx)

	return err
}

// Counters returns the global counters hash.
func (r *Redis) Counters(ctx context.Context) (map[string]string, error) {
	return r.client.HGetAll(ctx, countersKey).Result()
}

// LinkStats returns the per-link stats hash for code.
func (r *Redis) LinkStats(ctx context.Context, code string) (map[string]string, error) {
	return r.client.HGetAll(ctx, linkKeyPrefix+code).Result()
}
