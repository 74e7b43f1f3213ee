package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	deliverycontext "scout/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// maxPayloadBytes bounds a single ingested event body.
const maxPayloadBytes = 1 << 20

// IngestHandler receives webhook event payloads and hands them to the
// matching pipeline asynchronously.
type IngestHandler struct {
	logger *slog.Logger
	sink   EventSink
}

// IngestHandlerParams holds dependencies for the IngestHandler
type IngestHandlerParams struct {
	fx.In

	Logger *slog.Logger
	Sink   EventSink
}

// NewIngestHandler creates a webhook ingest handler
func NewIngestHandler(params IngestHandlerParams) *IngestHandler {
	return &IngestHandler{
		logger: params.Logger,
		sink:   params.Sink,
	}
}

// HandleIngest accepts one event of the path kind. The payload is validated
// shallowly and processed after the response; the sender gets 202 as soon as
// the event is admitted.
func (h *IngestHandler) HandleIngest(c echo.Context) error {
	kind := c.Param("kind")
	if !KnownKind(kind) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown event kind")
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}
	if !json.Valid(payload) {
		return echo.NewHTTPError(http.StatusBadRequest, "payload is not valid JSON")
	}

	reqLogger := h.logger.With(
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("kind", kind),
	)

	// Processing outlives the request; detach from its cancellation.
	ctx := context.WithoutCancel(c.Request().Context())
	go func() {
		if err := h.sink.Dispatch(ctx, kind, payload); err != nil {
			reqLogger.Error("[Ingest] Event processing failed", slog.Any("error", err))

			return
		}

		reqLogger.Debug("[Ingest] Event processed")
	}()

	return c.NoContent(http.StatusAccepted)
}
