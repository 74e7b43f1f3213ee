// Package pubsub provides the ingest feed publisher implementations.
package pubsub

import (
	"context"
	"log/slog"

	"scout/config"
	"scout/internal/domain/service"

	"github.com/pkg/errors"
)

// Supported feed providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// NewFeedPublisher creates the publisher selected by the pubsub config
// section. The caller owns the returned publisher and must Close it.
func NewFeedPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.FeedPublisher, error) {
	ps := cfg.PubSub
	if ps == nil || ps.Provider == "" {
		return nil, errors.New("pubsub is not configured")
	}

	switch ps.Provider {
	case ProviderLocal:
		if ps.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for the ingest feed",
			slog.String("endpoint", ps.LocalEndpoint),
		)

		return NewLocalHTTPPublisher(ps.LocalEndpoint, logger), nil

	case ProviderGoogle:
		if ps.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if ps.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher for the ingest feed",
			slog.String("project_id", ps.ProjectID),
			slog.String("topic_id", ps.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, ps.ProjectID, ps.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", ps.Provider)
	}
}
