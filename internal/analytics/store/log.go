package store

import (
	"context"

	"github.com/serroba/qrshare/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that only writes events to the logger.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a new logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	l.logger.Info("link created event received",
		zap.String("eventId", event.EventID),
		zap.String("code", event.Code),
		zap.String("type", event.Kind),
		zap.Int("contentLength", event.ContentLength),
		zap.Time("expiresAt", event.ExpiresAt),
	)

	return nil
}

func (l *Log) SaveLinkResolved(_ context.Context, event *analytics.LinkResolvedEvent) error {
	l.logger.Info("link resolved event received",
		zap.String("eventId", event.EventID),
		zap.String("code", event.Code),
		zap.String("source", event.Source),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (l *Log) SaveUploadPresigned(_ context.Context, event *analytics.UploadPresignedEvent) error {
	l.logger.Info("upload presigned event received",
		zap.String("eventId", event.EventID),
		zap.String("action", event.Action),
		zap.String("key", event.Key),
		zap.Int64("size", event.Size),
	)

	return nil
}
