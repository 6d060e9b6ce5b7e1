package analytics

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicLinkCreated     = "link.created"
	TopicLinkResolved    = "link.resolved"
	TopicUploadPresigned = "upload.presigned"
)

// Where a short link was resolved from.
const (
	SourceAPI  = "api"
	SourcePage = "page"
)

// LinkCreatedEvent is emitted after a short link is stored.
type LinkCreatedEvent struct {
	EventID       string    `json:"eventId"`
	Code          string    `json:"code"`
	Kind          string    `json:"type"`
	ContentLength int       `json:"contentLength"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	ClientIP      string    `json:"clientIp"`
	UserAgent     string    `json:"userAgent"`
}

// LinkResolvedEvent is emitted when a short link is read through the API or the page.
type LinkResolvedEvent struct {
	EventID    string    `json:"eventId"`
	Code       string    `json:"code"`
	Kind       string    `json:"type"`
	Source     string    `json:"source"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer,omitempty"`
}

// UploadPresignedEvent is emitted when an upload or download URL is issued.
type UploadPresignedEvent struct {
	EventID     string    `json:"eventId"`
	Action      string    `json:"action"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	IssuedAt    time.Time `json:"issuedAt"`
	ClientIP    string    `json:"clientIp"`
}

// NewEventID returns a random event identifier.
func NewEventID() string {
	return uuid.NewString()
}
