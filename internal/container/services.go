package container

import (
	"github.com/samber/do"
	"github.com/serroba/qrshare/internal/access"
	"github.com/serroba/qrshare/internal/objectstore"
	"github.com/serroba/qrshare/internal/ratelimit"
	"github.com/serroba/qrshare/internal/store"
	"go.uber.org/zap"
)

// ObjectStorePackage provides the object storage gateway.
func ObjectStorePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*objectstore.Gateway, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		gateway := objectstore.New(objectstore.Config{
			Endpoint:          opts.R2Endpoint,
			AccountID:         opts.R2AccountID,
			AccessKeyID:       opts.R2AccessKeyID,
			SecretAccessKey:   opts.R2SecretAccessKey,
			Bucket:            opts.R2BucketName,
			PublicDomain:      opts.R2PublicDomain,
			MaxUploadSize:     int64(opts.MaxUploadSize),
			UploadURLExpiry:   seconds(opts.UploadURLExpiry),
			DownloadURLExpiry: seconds(opts.DownloadURLExpiry),
		})

		if !gateway.Configured() {
			logger.Warn("object storage credentials missing; presign and download will fail")
		}

		return gateway, nil
	})
}

// AccessPackage provides the shared password guard.
func AccessPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*access.Guard, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.AccessPasswordHash != "" {
			return access.NewHashGuard(opts.AccessPasswordHash)
		}

		return access.NewGuard(opts.AccessPassword), nil
	})
}

// RateLimitPackage provides the policy limiter and its store.
func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		opts := do.MustInvoke[*Options](i)

		var rlStore ratelimit.Store = store.NewRateLimitMemoryStore()
		if opts.RateLimitBackend == BackendRedis {
			rlStore = store.NewRateLimitRedisStore(do.MustInvoke[*RedisClient](i).Client)
		}

		policyOpts := ratelimit.DefaultPolicyOptions()
		policyOpts.ShortenPerMinute = int64(opts.ShortenPerMinute)
		policyOpts.UploadPerMinute = int64(opts.UploadPerMinute)

		return ratelimit.NewPolicyLimiter(rlStore, ratelimit.NewPolicy(policyOpts)), nil
	})
}
