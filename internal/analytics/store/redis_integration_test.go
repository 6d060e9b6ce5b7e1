//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/qrshare/internal/analytics"
	"github.com/serroba/qrshare/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.Del(ctx, "analytics:counters", "analytics:link:stat01")

	s := store.NewRedis(client)
	now := time.Now()

	require.NoError(t, s.SaveLinkCreated(ctx, &analytics.LinkCreatedEvent{Code: "stat01", Kind: "url", CreatedAt: now}))
	require.NoError(t, s.SaveLinkResolved(ctx, &analytics.LinkResolvedEvent{Code: "stat01", Source: "page", ResolvedAt: now}))
	require.NoError(t, s.SaveLinkResolved(ctx, &analytics.LinkResolvedEvent{Code: "stat01", Source: "api", ResolvedAt: now}))
	require.NoError(t, s.SaveUploadPresigned(ctx, &analytics.UploadPresignedEvent{Action: "put", Size: 100}))

	counters, err := s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", counters["links_created"])
	assert.Equal(t, "1", counters["links_created_url"])
	assert.Equal(t, "1", counters["links_resolved_page"])
	assert.Equal(t, "1", counters["links_resolved_api"])
	assert.Equal(t, "1", counters["presigned_put"])
	assert.Equal(t, "100", counters["upload_bytes"])

	stats, err := s.LinkStats(ctx, "stat01")
	require.NoError(t, err)
	assert.Equal(t, "2", stats["resolves"])
	assert.NotEmpty(t, stats["last_resolved_at"])
}
