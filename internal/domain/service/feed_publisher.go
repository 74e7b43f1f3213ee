package service

import (
	"context"
	"encoding/json"
)

// FeedEvent is one wire event on the ingest feed. Payload is the raw
// kind-specific event JSON.
type FeedEvent struct {
	RequestID string          `json:"request_id,omitempty"` // for distributed tracing
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

// FeedPublisher publishes game events onto the ingest feed.
type FeedPublisher interface {
	// PublishEvent publishes one event for async processing.
	PublishEvent(ctx context.Context, event *FeedEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
