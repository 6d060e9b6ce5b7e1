package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/access"
	"go.uber.org/zap"
)

// AccessPassword rejects requests to operations marked with access.MetadataKey
// unless they carry the configured password. It runs before the request body
// is parsed, so a wrong password wins over an invalid body.
func AccessPassword(
	api huma.API,
	guard *access.Guard,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !guard.Enabled() || !requiresPassword(ctx.Operation()) {
			next(ctx)

			return
		}

		if err := guard.Verify(ctx.Header(access.HeaderName)); err != nil {
			logger.Info("access password rejected",
				zap.String("path", ctx.Operation().Path),
				zap.String("client_ip", clientIP(ctx)),
			)

			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid Password")

			return
		}

		next(ctx)
	}
}

func requiresPassword(op *huma.Operation) bool {
	if op == nil || op.Metadata == nil {
		return false
	}

	required, _ := op.Metadata[access.MetadataKey].(bool)

	return required
}
