package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scout/config"
	httpvalidator "scout/internal/delivery/http/validator"
	"scout/internal/domain/service"
	"scout/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushHandler(sink EventSink, cfg *config.Config) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Sink:   sink,
	})
}

func devConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "develop"
	cfg.PubSub = &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8080/push"}

	return cfg
}

func pushRequest(t *testing.T, event *service.FeedEvent) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)

	var pushMsg PubSubMessage
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(data)
	pushMsg.Message.MessageID = "m-1"
	pushMsg.Subscription = "projects/local/subscriptions/event-feed-sub"

	return rawPushRequest(t, &pushMsg)
}

func rawPushRequest(t *testing.T, pushMsg *PubSubMessage) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, err := json.Marshal(pushMsg)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = httpvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestHandlePush_ProcessesEvent(t *testing.T) {
	sink := newFakeSink(nil)
	h := newPushHandler(sink, devConfig())

	c, rec := pushRequest(t, &service.FeedEvent{
		Kind:    "quest",
		Payload: json.RawMessage(`{"task":"Catch 5 Pokemon","reward":"Stardust"}`),
	})
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.kinds, 1)
	assert.Equal(t, "quest", sink.kinds[0])
}

func TestHandlePush_ProcessingFailureRequestsRetry(t *testing.T) {
	sink := newFakeSink(errors.New("store unavailable"))
	h := newPushHandler(sink, devConfig())

	c, rec := pushRequest(t, &service.FeedEvent{
		Kind:    "pokemon",
		Payload: json.RawMessage(`{"pokemon_id":147}`),
	})
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_UnknownKindIsAcked(t *testing.T) {
	sink := newFakeSink(errors.Wrap(ErrUnknownKind, `kind "weather"`))
	h := newPushHandler(sink, devConfig())

	c, rec := pushRequest(t, &service.FeedEvent{
		Kind:    "weather",
		Payload: json.RawMessage(`{}`),
	})
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_MalformedBase64Rejected(t *testing.T) {
	sink := newFakeSink(nil)
	h := newPushHandler(sink, devConfig())

	var pushMsg PubSubMessage
	pushMsg.Message.Data = "not-base64!!"
	pushMsg.Message.MessageID = "m-1"

	c, rec := rawPushRequest(t, &pushMsg)
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.kinds)
}

func TestHandlePush_EnvelopeWithoutDataRejected(t *testing.T) {
	sink := newFakeSink(nil)
	h := newPushHandler(sink, devConfig())

	var pushMsg PubSubMessage
	pushMsg.Message.MessageID = "m-1"

	c, rec := rawPushRequest(t, &pushMsg)
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.kinds)
}

func TestKnownKind(t *testing.T) {
	for _, kind := range []string{"pokemon", "pvp", "raid", "quest", "invasion", "lure"} {
		assert.True(t, KnownKind(kind), kind)
	}
	assert.False(t, KnownKind("weather"))
	assert.False(t, KnownKind(""))
}
