package handlers

import (
	"context"
	"strings"
)

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata used for short URLs and analytics.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
	// Host is the public host the client addressed, honoring X-Forwarded-Host.
	Host string
	// Proto is the public scheme, honoring X-Forwarded-Proto.
	Proto string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

// BaseURL returns proto://host, or fallback when no host is known.
func (m RequestMeta) BaseURL(fallback string) string {
	if m.Host == "" {
		return strings.TrimRight(fallback, "/")
	}

	proto := m.Proto
	if proto == "" {
		proto = "https"
	}

	return proto + "://" + m.Host
}
