package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/qrshare/internal/messaging"
)

// Publishers bundles the typed publish functions used by the HTTP handlers.
type Publishers struct {
	LinkCreated     messaging.Publish[LinkCreatedEvent]
	LinkResolved    messaging.Publish[LinkResolvedEvent]
	UploadPresigned messaging.Publish[UploadPresignedEvent]
}

// NewPublishers creates publish functions for every analytics topic.
func NewPublishers(publisher message.Publisher) Publishers {
	return Publishers{
		LinkCreated:     messaging.NewPublishFunc[LinkCreatedEvent](publisher, TopicLinkCreated),
		LinkResolved:    messaging.NewPublishFunc[LinkResolvedEvent](publisher, TopicLinkResolved),
		UploadPresigned: messaging.NewPublishFunc[UploadPresignedEvent](publisher, TopicUploadPresigned),
	}
}

// NoopPublishers drops every event.
func NoopPublishers() Publishers {
	return Publishers{
		LinkCreated:     messaging.NoopPublish[LinkCreatedEvent](),
		LinkResolved:    messaging.NoopPublish[LinkResolvedEvent](),
		UploadPresigned: messaging.NoopPublish[UploadPresignedEvent](),
	}
}
