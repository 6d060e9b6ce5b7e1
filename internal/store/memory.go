package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/qrshare/internal/shortlink"
)

// MemoryStore is an in-memory implementation of shortlink.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[shortlink.Code]shortlink.Record
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory short link store.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an in-memory store that evaluates expiry against now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		records: make(map[shortlink.Code]shortlink.Record),
		now:     now,
	}
}

func (m *MemoryStore) Save(_ context.Context, rec *shortlink.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.Code] = *rec

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortlink.Code) (*shortlink.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	if !rec.ExpiresAt.IsZero() && !m.now().Before(rec.ExpiresAt) {
		return nil, shortlink.ErrNotFound
	}

	return &rec, nil
}

var _ shortlink.Repository = (*MemoryStore)(nil)
