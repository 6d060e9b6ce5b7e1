package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/analytics"
	"github.com/serroba/qrshare/internal/shortlink"
	"go.uber.org/zap"
)

// createdAtLayout matches JavaScript's Date.toISOString.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// LinkHandler serves the shorten API and the short link page.
type LinkHandler struct {
	links      ShortLinks
	baseURL    string
	publishers analytics.Publishers
	logger     *zap.Logger
	now        func() time.Time
}

// NewLinkHandler creates a link handler. baseURL is used for short URLs when
// the request carries no host.
func NewLinkHandler(
	links ShortLinks,
	baseURL string,
	publishers analytics.Publishers,
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		links:      links,
		baseURL:    baseURL,
		publishers: publishers,
		logger:     logger,
		now:        time.Now,
	}
}

func (h *LinkHandler) CreateShortLink(
	ctx context.Context,
	req *CreateShortLinkRequest,
) (*CreateShortLinkResponse, error) {
	rec, err := h.links.Create(ctx, req.Body.Content)
	if err != nil {
		h.logger.Error("failed to create short link", zap.Error(err))

		return nil, huma.Error500InternalServerError(msgInternal)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		EventID:       analytics.NewEventID(),
		Code:          string(rec.Code),
		Kind:          string(rec.Kind),
		ContentLength: len(rec.Content),
		CreatedAt:     rec.CreatedAt,
		ExpiresAt:     rec.ExpiresAt,
		ClientIP:      meta.ClientIP,
		UserAgent:     meta.UserAgent,
	}

	if err := h.publishers.LinkCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &CreateShortLinkResponse{}
	resp.Body.Code = string(rec.Code)
	resp.Body.ShortURL = meta.BaseURL(h.baseURL) + "/s/" + string(rec.Code)

	return resp, nil
}

func (h *LinkHandler) GetShortLink(ctx context.Context, req *GetShortLinkRequest) (*GetShortLinkResponse, error) {
	rec, err := h.links.Resolve(ctx, shortlink.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound(msgShortLinkNotFound)
		}

		h.logger.Error("failed to resolve short link", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError(msgInternal)
	}

	h.publishResolved(ctx, rec, analytics.SourceAPI)

	resp := &GetShortLinkResponse{}
	resp.Body.Content = rec.Content
	resp.Body.Type = string(rec.Kind)
	resp.Body.CreatedAt = rec.CreatedAt.UTC().Format(createdAtLayout)

	return resp, nil
}

// Page redirects url links, renders text links, and renders a 404 page for
// anything it cannot resolve, store failures included.
func (h *LinkHandler) Page(ctx context.Context, req *PageRequest) (*PageResponse, error) {
	rec, err := h.links.Resolve(ctx, shortlink.Code(req.Code))
	if err != nil {
		if !errors.Is(err, shortlink.ErrNotFound) {
			h.logger.Error("failed to resolve short link page", zap.String("code", req.Code), zap.Error(err))
		}

		return renderPage(http.StatusNotFound, pageNotFound, nil)
	}

	h.publishResolved(ctx, rec, analytics.SourcePage)

	if rec.Kind == shortlink.KindURL {
		return &PageResponse{
			Status:       http.StatusTemporaryRedirect,
			Location:     strings.TrimSpace(rec.Content),
			CacheControl: "no-store",
		}, nil
	}

	return renderPage(http.StatusOK, pageText, rec)
}

func (h *LinkHandler) publishResolved(ctx context.Context, rec *shortlink.Record, source string) {
	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		EventID:    analytics.NewEventID(),
		Code:       string(rec.Code),
		Kind:       string(rec.Kind),
		Source:     source,
		ResolvedAt: h.now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishers.LinkResolved(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}
