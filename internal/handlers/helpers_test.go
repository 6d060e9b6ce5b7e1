package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/qrshare/internal/access"
	"github.com/serroba/qrshare/internal/analytics"
	"github.com/serroba/qrshare/internal/handlers"
	"github.com/serroba/qrshare/internal/middleware"
	"go.uber.org/zap"
)

const testPassword = "open-sesame"

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

type capturedEvents struct {
	mu       sync.Mutex
	created  []*analytics.LinkCreatedEvent
	resolved []*analytics.LinkResolvedEvent
	uploads  []*analytics.UploadPresignedEvent
}

func (c *capturedEvents) publishers() analytics.Publishers {
	return analytics.Publishers{
		LinkCreated: func(_ context.Context, e *analytics.LinkCreatedEvent) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.created = append(c.created, e)

			return nil
		},
		LinkResolved: func(_ context.Context, e *analytics.LinkResolvedEvent) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.resolved = append(c.resolved, e)

			return nil
		},
		UploadPresigned: func(_ context.Context, e *analytics.UploadPresignedEvent) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.uploads = append(c.uploads, e)

			return nil
		},
	}
}

type testServer struct {
	api    humatest.TestAPI
	events *capturedEvents
}

type serverOptions struct {
	links    handlers.ShortLinks
	gateway  handlers.ObjectGateway
	password string
	logger   *zap.Logger
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}

	guard := access.NewGuard(opts.password)
	events := &capturedEvents{}
	publishers := events.publishers()

	router := chi.NewMux()
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	api := humachi.New(router, handlers.APIConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))
	api.UseMiddleware(middleware.AccessPassword(api, guard, opts.logger))

	handlers.RegisterRoutes(api,
		handlers.NewLinkHandler(opts.links, "https://fallback.example", publishers, opts.logger),
		handlers.NewObjectHandler(opts.gateway, guard, publishers.UploadPresigned, opts.logger,
			handlers.WithObjectClock(func() time.Time { return fixedNow })),
		handlers.NewQRHandler(),
	)

	return &testServer{api: humatest.Wrap(t, api), events: events}
}
