package ratelimit

import (
	"context"
	"time"
)

// Store keeps a sliding window of request timestamps per key.
type Store interface {
	// Record adds a request for key at the current time and returns how many
	// requests for key fall inside the trailing window, this one included.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
