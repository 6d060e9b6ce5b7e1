// Package objectstore mints presigned URLs for an S3-compatible bucket and
// streams objects for the download endpoint.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const (
	DefaultUploadURLExpiry   = 5 * time.Minute
	DefaultDownloadURLExpiry = time.Hour
	DefaultMaxUploadSize     = 10 << 20
	DefaultContentType       = "application/octet-stream"
)

// Config describes the bucket and URL policy.
type Config struct {
	// Endpoint overrides the R2 endpoint derived from AccountID (e.g. a MinIO URL).
	Endpoint        string
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicDomain, when set, is used for unsigned permanent download URLs.
	PublicDomain      string
	MaxUploadSize     int64
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}

	if c.AccountID == "" {
		return ""
	}

	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

// Object is an open object body with its metadata. Callers must close Body.
type Object struct {
	Key           string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Gateway issues presigned URLs and reads objects from the bucket.
type Gateway struct {
	cfg       Config
	client    *s3.Client
	presigner *s3.PresignClient
}

// New creates a gateway. Missing credentials are not an error here: the
// operations that need them return ErrNotConfigured instead.
func New(cfg Config) *Gateway {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}

	if cfg.UploadURLExpiry <= 0 {
		cfg.UploadURLExpiry = DefaultUploadURLExpiry
	}

	if cfg.DownloadURLExpiry <= 0 {
		cfg.DownloadURLExpiry = DefaultDownloadURLExpiry
	}

	g := &Gateway{cfg: cfg}

	endpoint := cfg.endpoint()
	if endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" {
		return g
	}

	g.client = s3.New(s3.Options{
		Region:                     "auto",
		BaseEndpoint:               aws.String(endpoint),
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	g.presigner = s3.NewPresignClient(g.client)

	return g
}

// MaxUploadSize returns the largest accepted upload in bytes.
func (g *Gateway) MaxUploadSize() int64 {
	return g.cfg.MaxUploadSize
}

// Configured reports whether bucket credentials are present.
func (g *Gateway) Configured() bool {
	return g.client != nil
}

// IssuePutURL presigns an upload of size bytes to key.
func (g *Gateway) IssuePutURL(ctx context.Context, key, contentType string, size int64) (string, error) {
	if size > g.cfg.MaxUploadSize {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, g.cfg.MaxUploadSize)
	}

	if !g.Configured() {
		return "", ErrNotConfigured
	}

	if contentType == "" {
		contentType = DefaultContentType
	}

	req, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(g.cfg.UploadURLExpiry))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}

	return req.URL, nil
}

// IssueGetURL returns a public URL when a public domain is configured, and a
// presigned GET otherwise.
func (g *Gateway) IssueGetURL(ctx context.Context, key string) (string, error) {
	if g.cfg.PublicDomain != "" {
		return PublicURL(g.cfg.PublicDomain, key), nil
	}

	if !g.Configured() {
		return "", ErrNotConfigured
	}

	req, err := g.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(g.cfg.DownloadURLExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}

	return req.URL, nil
}

// StreamObject opens key for reading.
func (g *Gateway) StreamObject(ctx context.Context, key string) (*Object, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	if out.Body == nil {
		return nil, ErrNotFound
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = DefaultContentType
	}

	return &Object{
		Key:           key,
		ContentType:   contentType,
		ContentLength: aws.ToInt64(out.ContentLength),
		Body:          out.Body,
	}, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}

// PublicURL joins a public bucket domain and key. Domains without a scheme get https.
func PublicURL(domain, key string) string {
	base := strings.TrimRight(domain, "/")
	if !strings.HasPrefix(base, "http") {
		base = "https://" + base
	}

	return base + "/" + (&url.URL{Path: key}).EscapedPath()
}
