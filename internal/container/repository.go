package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/do"
	"github.com/serroba/qrshare/internal/shortlink"
	"github.com/serroba/qrshare/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the short link repository selected by Options.Backend
// and the service built on it.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*store.PostgresStore, error) {
		pg := store.NewPostgresStore(do.MustInvoke[*PostgresPool](i).Pool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}

		return pg, nil
	})

	do.Provide(i, func(i *do.Injector) (shortlink.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var repo shortlink.Repository

		switch opts.Backend {
		case BackendMemory:
			repo = store.NewMemoryStore()
		case BackendRedis:
			repo = store.NewRedisStore(do.MustInvoke[*RedisClient](i).Client)
		case BackendPostgres:
			repo = do.MustInvoke[*store.PostgresStore](i)
		case BackendCloudflare:
			repo = store.NewCloudflareKVStore(store.CloudflareKVConfig{
				APIBase:     opts.KVAPIBase,
				AccountID:   opts.R2AccountID,
				NamespaceID: opts.KVNamespaceID,
				APIToken:    opts.KVAPIToken,
			}, &http.Client{Timeout: 10 * time.Second})
		default:
			return nil, fmt.Errorf("unknown backend %q", opts.Backend)
		}

		if opts.CacheTTL > 0 && (opts.Backend == BackendPostgres || opts.Backend == BackendCloudflare) {
			repo = store.NewRedisCacheRepository(repo, do.MustInvoke[*RedisClient](i).Client, seconds(opts.CacheTTL))
		}

		logger.Info("short link backend ready",
			zap.String("backend", opts.Backend),
			zap.Int("cache_ttl_seconds", opts.CacheTTL),
		)

		return repo, nil
	})

	do.Provide(i, func(i *do.Injector) (*shortlink.Service, error) {
		opts := do.MustInvoke[*Options](i)

		gen, err := shortlink.NewCodeGenerator()
		if err != nil {
			return nil, err
		}

		return shortlink.NewService(
			do.MustInvoke[shortlink.Repository](i),
			gen,
			shortlink.WithTTL(seconds(opts.ShortLinkTTL)),
		), nil
	})
}

const purgeInterval = time.Hour

// ExpiryPurger deletes expired Postgres rows on an interval. Reads already
// ignore expired rows, so the purge only bounds table growth.
type ExpiryPurger struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *ExpiryPurger) Shutdown() error {
	p.cancel()
	<-p.done

	return nil
}

// PurgerPackage provides the expiry purger for the Postgres backend. Invoking
// it starts the loop.
func PurgerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ExpiryPurger, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		pg := do.MustInvoke[*store.PostgresStore](i)

		ctx, cancel := context.WithCancel(context.Background())
		purger := &ExpiryPurger{cancel: cancel, done: make(chan struct{})}

		go func() {
			defer close(purger.done)

			ticker := time.NewTicker(purgeInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					removed, err := pg.PurgeExpired(ctx, now)
					if err != nil {
						logger.Error("failed to purge expired short links", zap.Error(err))

						continue
					}

					logger.Info("purged expired short links", zap.Int64("removed", removed))
				}
			}
		}()

		return purger, nil
	})
}
