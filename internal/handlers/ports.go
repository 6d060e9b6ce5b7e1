package handlers

import (
	"context"

	"github.com/serroba/qrshare/internal/objectstore"
	"github.com/serroba/qrshare/internal/shortlink"
)

//go:generate mockgen -destination=../mocks/mock_handlers.go -package=mocks github.com/serroba/qrshare/internal/handlers ShortLinks,ObjectGateway

// ShortLinks creates and resolves short links.
type ShortLinks interface {
	Create(ctx context.Context, content string) (*shortlink.Record, error)
	Resolve(ctx context.Context, code shortlink.Code) (*shortlink.Record, error)
}

// ObjectGateway issues object storage URLs and streams objects.
type ObjectGateway interface {
	MaxUploadSize() int64
	IssuePutURL(ctx context.Context, key, contentType string, size int64) (string, error)
	IssueGetURL(ctx context.Context, key string) (string, error)
	StreamObject(ctx context.Context, key string) (*objectstore.Object, error)
}

var (
	_ ShortLinks    = (*shortlink.Service)(nil)
	_ ObjectGateway = (*objectstore.Gateway)(nil)
)
