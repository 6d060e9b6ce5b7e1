package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/access"
	"github.com/serroba/qrshare/internal/analytics"
	"github.com/serroba/qrshare/internal/messaging"
	"github.com/serroba/qrshare/internal/objectstore"
	"go.uber.org/zap"
)

// ObjectHandler issues presigned object storage URLs and streams downloads.
type ObjectHandler struct {
	gateway ObjectGateway
	guard   *access.Guard
	publish messaging.Publish[analytics.UploadPresignedEvent]
	logger  *zap.Logger
	now     func() time.Time
}

// ObjectOption configures an ObjectHandler.
type ObjectOption func(*ObjectHandler)

// WithObjectClock sets the clock used to name uploads.
func WithObjectClock(now func() time.Time) ObjectOption {
	return func(h *ObjectHandler) {
		h.now = now
	}
}

func NewObjectHandler(
	gateway ObjectGateway,
	guard *access.Guard,
	publish messaging.Publish[analytics.UploadPresignedEvent],
	logger *zap.Logger,
	opts ...ObjectOption,
) *ObjectHandler {
	h := &ObjectHandler{
		gateway: gateway,
		guard:   guard,
		publish: publish,
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Presign handles put, get and verify. The password is required for every
// action except get, so shared download links keep working.
func (h *ObjectHandler) Presign(ctx context.Context, req *PresignRequest) (*PresignResponse, error) {
	action := req.Body.Action

	if action != ActionGet {
		if err := h.guard.Verify(req.AccessPassword); err != nil {
			return nil, huma.Error401Unauthorized(msgUnauthorized)
		}
	}

	switch action {
	case ActionVerify:
		resp := &PresignResponse{}
		resp.Body.Status = "ok"

		return resp, nil
	case ActionPut:
		return h.presignPut(ctx, req)
	default:
		return h.presignGet(ctx, req)
	}
}

func (h *ObjectHandler) presignPut(ctx context.Context, req *PresignRequest) (*PresignResponse, error) {
	if req.Body.Size == nil || *req.Body.Size <= 0 {
		return nil, huma.Error400BadRequest("File size is required for upload")
	}

	size := *req.Body.Size
	if size > h.gateway.MaxUploadSize() {
		return nil, huma.Error400BadRequest(h.tooLargeMessage())
	}

	key := strconv.FormatInt(h.now().UnixMilli(), 10) + path.Ext(req.Body.Key)

	signed, err := h.gateway.IssuePutURL(ctx, key, req.Body.ContentType, size)
	if err != nil {
		if errors.Is(err, objectstore.ErrTooLarge) {
			return nil, huma.Error400BadRequest(h.tooLargeMessage())
		}

		h.logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))

		return nil, huma.Error500InternalServerError(msgInternal)
	}

	h.publishEvent(ctx, &analytics.UploadPresignedEvent{
		Action:      ActionPut,
		Key:         key,
		ContentType: req.Body.ContentType,
		Size:        size,
	})

	resp := &PresignResponse{}
	resp.Body.URL = signed
	resp.Body.Key = key

	return resp, nil
}

func (h *ObjectHandler) presignGet(ctx context.Context, req *PresignRequest) (*PresignResponse, error) {
	signed, err := h.gateway.IssueGetURL(ctx, req.Body.Key)
	if err != nil {
		h.logger.Error("failed to presign download", zap.String("key", req.Body.Key), zap.Error(err))

		return nil, huma.Error500InternalServerError(msgInternal)
	}

	h.publishEvent(ctx, &analytics.UploadPresignedEvent{Action: ActionGet, Key: req.Body.Key})

	resp := &PresignResponse{}
	resp.Body.URL = signed
	resp.Body.Key = req.Body.Key

	return resp, nil
}

func (h *ObjectHandler) tooLargeMessage() string {
	return fmt.Sprintf("File size exceeds limit of %gMB", float64(h.gateway.MaxUploadSize())/(1<<20))
}

func (h *ObjectHandler) publishEvent(ctx context.Context, event *analytics.UploadPresignedEvent) {
	event.EventID = analytics.NewEventID()
	event.IssuedAt = h.now().UTC()
	event.ClientIP = RequestMetaFromContext(ctx).ClientIP

	if err := h.publish(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}
}

// Download streams an object with an attachment disposition.
func (h *ObjectHandler) Download(ctx context.Context, req *DownloadRequest) (*huma.StreamResponse, error) {
	obj, err := h.gateway.StreamObject(ctx, req.Key)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return nil, huma.Error404NotFound(msgFileNotFound)
		}

		h.logger.Error("failed to open object", zap.String("key", req.Key), zap.Error(err))

		return nil, huma.Error500InternalServerError(msgInternal)
	}

	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			defer obj.Body.Close()

			hctx.SetHeader("Content-Type", obj.ContentType)
			hctx.SetHeader("Content-Disposition", `attachment; filename="`+attachmentName(req.Key)+`"`)

			if obj.ContentLength > 0 {
				hctx.SetHeader("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
			}

			hctx.SetStatus(http.StatusOK)

			if _, err := io.Copy(hctx.BodyWriter(), obj.Body); err != nil {
				h.logger.Warn("download interrupted", zap.String("key", req.Key), zap.Error(err))
			}
		},
	}, nil
}

// attachmentName is the last path segment of key, percent-encoded.
func attachmentName(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	if name == "" {
		name = "download"
	}

	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
