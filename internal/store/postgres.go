package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/qrshare/internal/shortlink"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS short_links (
		code       TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		kind       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS short_links_expires_at_idx ON short_links (expires_at);
`

// PostgresStore is a PostgreSQL implementation of shortlink.Repository.
// Expiry is enforced on read; expired rows are removed by PurgeExpired.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed short link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_links table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresSchema)

	return err
}

func (p *PostgresStore) Save(ctx context.Context, rec *shortlink.Record) error {
	// A colliding code overwrites, matching the key-value backends.
	query := `
		INSERT INTO short_links (code, content, kind, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE
		SET content = EXCLUDED.content,
		    kind = EXCLUDED.kind,
		    created_at = EXCLUDED.created_at,
		    expires_at = EXCLUDED.expires_at
	`

	expiresAt := rec.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = rec.CreatedAt.Add(shortlink.DefaultTTL)
	}

	_, err := p.pool.Exec(ctx, query,
		string(rec.Code),
		rec.Content,
		string(rec.Kind),
		rec.CreatedAt,
		expiresAt,
	)

	return err
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Record, error) {
	query := `
		SELECT code, content, kind, created_at, expires_at
		FROM short_links
		WHERE code = $1 AND expires_at > now()
	`

	var (
		rec        shortlink.Record
		storedCode string
		kind       string
	)

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&storedCode,
		&rec.Content,
		&kind,
		&rec.CreatedAt,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	rec.Code = shortlink.Code(storedCode)
	rec.Kind = shortlink.Kind(kind)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.ExpiresAt = rec.ExpiresAt.UTC()

	return &rec, nil
}

// PurgeExpired deletes rows whose expiry is before now and returns how many were removed.
func (p *PostgresStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM short_links WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortlink.Repository = (*PostgresStore)(nil)
