package shortlink

import "context"

// Repository persists short link records.
//
// Save must honor rec.ExpiresAt so that GetByCode stops returning the record
// once it has passed. Implementations do not check for code collisions: a
// second Save under the same code replaces the first record.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	GetByCode(ctx context.Context, code Code) (*Record, error)
}
