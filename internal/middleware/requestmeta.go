package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/handlers"
)

// RequestMeta is a middleware that stores client and public host details in the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		host := firstValue(ctx.Header("X-Forwarded-Host"))
		if host == "" {
			host = ctx.Host()
		}

		proto := firstValue(ctx.Header("X-Forwarded-Proto"))
		if proto == "" {
			proto = "https"
		}

		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
			Host:      host,
			Proto:     proto,
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}
