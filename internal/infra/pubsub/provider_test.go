package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"scout/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewFeedPublisher_LocalProvider(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{
		Provider:      ProviderLocal,
		LocalEndpoint: "http://localhost:8080/push",
	}}

	pub, err := NewFeedPublisher(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, pub)
	assert.NoError(t, pub.Close())
}

func TestNewFeedPublisher_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		pubsub *config.PubSubConfig
	}{
		{"not configured", nil},
		{"empty provider", &config.PubSubConfig{}},
		{"local without endpoint", &config.PubSubConfig{Provider: ProviderLocal}},
		{"google without project id", &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "events"}},
		{"google without topic id", &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "scout"}},
		{"unknown provider", &config.PubSubConfig{Provider: "kafka"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{PubSub: tt.pubsub}

			_, err := NewFeedPublisher(context.Background(), cfg, discardLogger())
			assert.Error(t, err)
		})
	}
}
