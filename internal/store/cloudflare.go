package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/serroba/qrshare/internal/shortlink"
)

// DefaultCloudflareAPIBase is the Cloudflare v4 REST root.
const DefaultCloudflareAPIBase = "https://api.cloudflare.com/client/v4"

// Cloudflare KV refuses expiration_ttl values below one minute.
const minCloudflareTTL = 60 * time.Second

// CloudflareKVConfig addresses a Workers KV namespace.
type CloudflareKVConfig struct {
	APIBase     string
	AccountID   string
	NamespaceID string
	APIToken    string
}

// CloudflareKVStore is a shortlink.Repository backed by the Workers KV REST API.
// Values are stored as {content,type,createdAt} JSON with an expiration_ttl.
type CloudflareKVStore struct {
	cfg    CloudflareKVConfig
	client *http.Client
	now    func() time.Time
}

// NewCloudflareKVStore creates a KV store. A nil client uses http.DefaultClient.
func NewCloudflareKVStore(cfg CloudflareKVConfig, client *http.Client) *CloudflareKVStore {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultCloudflareAPIBase
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &CloudflareKVStore{cfg: cfg, client: client, now: time.Now}
}

func (c *CloudflareKVStore) configured() bool {
	return c.cfg.AccountID != "" && c.cfg.NamespaceID != "" && c.cfg.APIToken != ""
}

func (c *CloudflareKVStore) valueURL(code shortlink.Code) string {
	return fmt.Sprintf("%s/accounts/%s/storage/kv/namespaces/%s/values/%s",
		c.cfg.APIBase,
		url.PathEscape(c.cfg.AccountID),
		url.PathEscape(c.cfg.NamespaceID),
		url.PathEscape(code.Key()),
	)
}

func (c *CloudflareKVStore) Save(ctx context.Context, rec *shortlink.Record) error {
	if !c.configured() {
		return shortlink.ErrNotConfigured
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	target := c.valueURL(rec.Code)

	if !rec.ExpiresAt.IsZero() {
		ttl := max(rec.ExpiresAt.Sub(c.now()), minCloudflareTTL)
		target += "?expiration_ttl=" + strconv.FormatInt(int64(ttl/time.Second), 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("kv write: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return &shortlink.UpstreamError{Op: "write", Status: resp.StatusCode, Body: string(body)}
	}

	return nil
}

func (c *CloudflareKVStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Record, error) {
	if !c.configured() {
		return nil, shortlink.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.valueURL(code), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kv read: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, shortlink.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &shortlink.UpstreamError{Op: "read", Status: resp.StatusCode, Body: http.StatusText(resp.StatusCode)}
	}

	var rec shortlink.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", code, err)
	}

	rec.Code = code

	return &rec, nil
}

var _ shortlink.Repository = (*CloudflareKVStore)(nil)
