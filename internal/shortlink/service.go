package shortlink

import (
	"context"
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
)

const (
	// CodeLength is the number of characters in a generated code.
	CodeLength = 6
	// CodeAlphabet holds the characters codes are drawn from.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// CodeGenerator generates short codes.
type CodeGenerator func() string

// NewCodeGenerator returns a generator of CodeLength characters drawn uniformly from CodeAlphabet.
func NewCodeGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(CodeAlphabet, CodeLength)
	if err != nil {
		return nil, fmt.Errorf("code generator: %w", err)
	}

	return gen, nil
}

// Service creates and resolves short links.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	ttl          time.Duration
	now          func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a short link service.
func NewService(store Repository, generator CodeGenerator, opts ...Option) *Service {
	s := &Service{
		store:        store,
		generateCode: generator,
		ttl:          DefaultTTL,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TTL returns the lifetime applied to new records.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create stores content under a fresh code. No collision check is made.
func (s *Service) Create(ctx context.Context, content string) (*Record, error) {
	createdAt := s.now().UTC().Truncate(time.Millisecond)

	rec := &Record{
		Code:      Code(s.generateCode()),
		Content:   content,
		Kind:      Classify(content),
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(s.ttl),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Resolve returns the record for code, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*Record, error) {
	return s.store.GetByCode(ctx, code)
}
