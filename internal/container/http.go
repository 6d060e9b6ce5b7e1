package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/qrshare/internal/access"
	"github.com/serroba/qrshare/internal/analytics"
	"github.com/serroba/qrshare/internal/handlers"
	"github.com/serroba/qrshare/internal/health"
	"github.com/serroba/qrshare/internal/middleware"
	"github.com/serroba/qrshare/internal/objectstore"
	"github.com/serroba/qrshare/internal/ratelimit"
	"github.com/serroba/qrshare/internal/shortlink"
	"go.uber.org/zap"
)

const (
	apiTitle   = "QR Share"
	apiVersion = "1.0.0"
)

// HTTPPackage provides the chi router and the huma API with every route
// registered. Invoking huma.API triggers registration.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		router := chi.NewMux()
		router.Use(chimw.RequestID, chimw.Recoverer, middleware.RequestLogger(logger))
		router.MethodNotAllowed(handlers.MethodNotAllowed)

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		guard := do.MustInvoke[*access.Guard](i)
		publishers := do.MustInvoke[analytics.Publishers](i)

		api := humachi.New(router, handlers.APIConfig(apiTitle, apiVersion))

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.PolicyRateLimiter(
				api,
				do.MustInvoke[*ratelimit.PolicyLimiter](i),
				ratelimit.NewOperationScopeResolver(),
				logger,
			),
			middleware.AccessPassword(api, guard, logger),
		)

		links := handlers.NewLinkHandler(
			do.MustInvoke[*shortlink.Service](i),
			opts.BaseURL,
			publishers,
			logger,
		)
		objects := handlers.NewObjectHandler(
			do.MustInvoke[*objectstore.Gateway](i),
			guard,
			publishers.UploadPresigned,
			logger,
		)

		handlers.RegisterRoutes(api, links, objects, handlers.NewQRHandler())
		health.RegisterRoutes(api, health.NewHandler(healthChecks(i, opts)))

		return api, nil
	})
}

func healthChecks(i *do.Injector, opts *Options) map[string]health.Checker {
	checks := map[string]health.Checker{}

	if opts.UsesRedis() {
		checks["redis"] = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).Client)
	}

	if opts.Backend == BackendPostgres {
		checks["postgres"] = do.MustInvoke[*PostgresPool](i)
	}

	return checks
}
