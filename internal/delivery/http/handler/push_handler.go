package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"scout/config"
	deliverycontext "scout/internal/delivery/context"
	"scout/internal/domain/service"
	"scout/internal/errors"
	"scout/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

const envDevelop = "develop"

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data" validate:"required"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId" validate:"required"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler handles Pub/Sub push deliveries of ingest feed events
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	sink           EventSink
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Sink   EventSink
}

// NewPushHandler creates a Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Tokens are only verifiable for the google provider outside development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == pubsub.ProviderGoogle &&
		params.Config.Env.Env != envDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		sink:           params.Sink,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Processing is
// synchronous: a store failure returns 503 so Pub/Sub redelivers, anything
// unprocessable is acked to stop retries.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Push] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Push] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}
	if err := c.Validate(&pushMsg); err != nil {
		h.logger.Error("[Push] Invalid push envelope", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Push] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.FeedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Push] Failed to parse feed event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Priority: message attributes > event field > request context
	requestID := h.extractRequestID(c, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.sink.Dispatch(ctx, event.Kind, event.Payload); err != nil {
		if errors.Is(err, ErrUnknownKind) {
			reqLogger.Warn("[Push] Dropping event of unknown kind",
				slog.String("kind", event.Kind),
			)

			return c.NoContent(http.StatusOK)
		}

		reqLogger.Error("[Push] Failed to process feed event",
			slog.String("kind", event.Kind),
			slog.Any("error", err),
		)

		// Store lookups are transient; ask Pub/Sub to redeliver.
		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Debug("[Push] Feed event processed", slog.String("kind", event.Kind))

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(c echo.Context, pushMsg *PubSubMessage, event *service.FeedEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(c.Request().Context()); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience must match the push endpoint URL
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
