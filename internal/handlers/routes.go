package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/access"
	"github.com/serroba/qrshare/internal/ratelimit"
)

// RegisterRoutes installs the error model and registers every API route with
// its rate limit and access configuration.
func RegisterRoutes(api huma.API, links *LinkHandler, objects *ObjectHandler, qr *QRHandler) {
	InstallErrorModel()

	// The password for presign depends on the action, so the handler checks it.
	huma.Register(api, huma.Operation{
		OperationID: "presign",
		Method:      http.MethodPost,
		Path:        "/api/r2/presign",
		Summary:     "Presign object storage URL",
		Description: "Issues a time-limited upload URL (put), a download URL (get), or verifies the access password (verify).",
		Tags:        []string{"Storage"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeUpload},
		},
	}, objects.Presign)

	huma.Register(api, huma.Operation{
		OperationID: "download",
		Method:      http.MethodGet,
		Path:        "/api/r2/download",
		Summary:     "Download object",
		Description: "Streams an object as an attachment.",
		Tags:        []string{"Storage"},
	}, objects.Download)

	huma.Register(api, huma.Operation{
		OperationID: "create-short-link",
		Method:      http.MethodPost,
		Path:        "/api/shorten",
		Summary:     "Create short link",
		Description: "Stores content under a random 6-character code for 7 days.",
		Tags:        []string{"Short links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeShorten},
			access.MetadataKey:    true,
		},
	}, links.CreateShortLink)

	huma.Register(api, huma.Operation{
		OperationID: "get-short-link",
		Method:      http.MethodGet,
		Path:        "/api/shorten",
		Summary:     "Resolve short link",
		Tags:        []string{"Short links"},
	}, links.GetShortLink)

	huma.Register(api, huma.Operation{
		OperationID:   "short-link-page",
		Method:        http.MethodGet,
		Path:          "/s/{code}",
		Summary:       "Short link page",
		Description:   "Redirects to url links and renders text links as HTML.",
		Tags:          []string{"Short links"},
		DefaultStatus: http.StatusOK,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 600}},
			},
		},
	}, links.Page)

	huma.Register(api, huma.Operation{
		OperationID: "render-qr",
		Method:      http.MethodGet,
		Path:        "/api/qr",
		Summary:     "Render QR code",
		Description: "Renders content as a PNG QR code.",
		Tags:        []string{"QR"},
	}, qr.Render)
}
