package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu     sync.Mutex
	kinds  []string
	bodies []string
	err    error
	called chan struct{}
}

func newFakeSink(err error) *fakeSink {
	return &fakeSink{err: err, called: make(chan struct{}, 16)}
}

func (f *fakeSink) Dispatch(_ context.Context, kind string, payload []byte) error {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.bodies = append(f.bodies, string(payload))
	f.mu.Unlock()
	f.called <- struct{}{}

	return f.err
}

func (f *fakeSink) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(5 * time.Second):
		t.Fatal("sink was not called")
	}
}

func ingestRequest(kind, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ingest/"+kind, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/ingest/:kind")
	c.SetParamNames("kind")
	c.SetParamValues(kind)

	return c, rec
}

func newIngestHandler(sink EventSink) *IngestHandler {
	return NewIngestHandler(IngestHandlerParams{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Sink:   sink,
	})
}

func TestHandleIngest_AcceptsAndDispatchesAsync(t *testing.T) {
	sink := newFakeSink(nil)
	h := newIngestHandler(sink)

	c, rec := ingestRequest("pokemon", `{"pokemon_id":147,"latitude":34.0,"longitude":-117.0}`)
	require.NoError(t, h.HandleIngest(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	sink.wait(t)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.kinds, 1)
	assert.Equal(t, "pokemon", sink.kinds[0])
	assert.Contains(t, sink.bodies[0], `"pokemon_id":147`)
}

func TestHandleIngest_RejectsUnknownKind(t *testing.T) {
	sink := newFakeSink(nil)
	h := newIngestHandler(sink)

	c, _ := ingestRequest("weather", `{}`)
	err := h.HandleIngest(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, sink.kinds)
}

func TestHandleIngest_RejectsMalformedJSON(t *testing.T) {
	sink := newFakeSink(nil)
	h := newIngestHandler(sink)

	c, _ := ingestRequest("raid", `{"pokemon_id":`)
	err := h.HandleIngest(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, sink.kinds)
}
