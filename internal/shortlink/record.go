package shortlink

import (
	"strings"
	"time"
)

// KeyPrefix namespaces short link records in key-value backends.
const KeyPrefix = "short:"

// DefaultTTL is how long a short link lives before the backend expires it.
const DefaultTTL = 7 * 24 * time.Hour

// Code is a short link identifier.
type Code string

// Key returns the backend key for the code.
func (c Code) Key() string {
	return KeyPrefix + string(c)
}

// Kind classifies the stored content.
type Kind string

const (
	KindURL  Kind = "url"
	KindText Kind = "text"
)

// Record is a stored short link. Records are immutable once written.
type Record struct {
	Code      Code      `json:"-"`
	Content   string    `json:"content"`
	Kind      Kind      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"-"`
}

// Classify reports KindURL when the trimmed content starts with an http or https scheme.
func Classify(content string) Kind {
	s := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return KindURL
	}

	return KindText
}
