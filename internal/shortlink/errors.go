package shortlink

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("short link not found")
	ErrNotConfigured = errors.New("short link store not configured")
)

// UpstreamError is returned when the backing store answers with a non-2xx status.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("kv %s failed: status %d", e.Op, e.Status)
	}

	return fmt.Sprintf("kv %s failed: status %d: %s", e.Op, e.Status, e.Body)
}

// IsUpstream reports whether err carries an UpstreamError.
func IsUpstream(err error) bool {
	var upstream *UpstreamError

	return errors.As(err, &upstream)
}
