package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scout/config"
	"scout/internal/compose"
	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/processor"
	"scout/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubRepo struct {
	calls []string
}

func (r *recordingSubRepo) FindByPokemonID(context.Context, int) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "pokemon")

	return nil, nil
}

func (r *recordingSubRepo) FindByPvPPokemonID(context.Context, int) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "pvp")

	return nil, nil
}

func (r *recordingSubRepo) FindByRaidBossID(context.Context, int) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "raid")

	return nil, nil
}

func (r *recordingSubRepo) FindByEncounterRewards(context.Context, []int) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "invasion")

	return nil, nil
}

func (r *recordingSubRepo) FindByLureType(context.Context, string) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "lure")

	return nil, nil
}

func (r *recordingSubRepo) FindAll(context.Context) ([]*entity.Subscription, error) {
	r.calls = append(r.calls, "all")

	return nil, nil
}

func (r *recordingSubRepo) UpdateStatus(context.Context, uuid.UUID, entity.NotificationStatus) error {
	return nil
}

type emptyGeoRepo struct{}

func (emptyGeoRepo) ListAreas(context.Context, uint64) ([]*entity.GeofenceArea, error) {
	return nil, nil
}

type allowMessenger struct{}

func (allowMessenger) IsEligible(context.Context, uint64, uint64) (bool, error) {
	return true, nil
}

func (allowMessenger) SendDirect(context.Context, uint64, uint64, *entity.Message) error {
	return nil
}

type sinkNopMetrics struct{}

func (sinkNopMetrics) NotificationMatched(entity.EventKind) {}
func (sinkNopMetrics) NotificationSent(entity.EventKind)    {}
func (sinkNopMetrics) NotificationLimited()                 {}
func (sinkNopMetrics) QueueDepth(int)                       {}

func newSinkFixture() (EventSink, *recordingSubRepo) {
	cfg := &config.Config{}
	cfg.Notify = config.NotifyConfig{CandidatePacing: time.Nanosecond}

	subs := &recordingSubRepo{}
	p := processor.New(processor.Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Subs:   subs,
		Areas:  emptyGeoRepo{},
		Catalog: entity.NewCatalog(
			[]entity.PokemonInfo{{ID: 147, Name: "Dratini"}},
			[]entity.GruntInfo{{ID: 6, Name: "Grunt", EncounterRewards: []int{7}}},
		),
		Messenger: allowMessenger{},
		Composer:  compose.New(),
		Metrics:   sinkNopMetrics{},
		Queue:     queue.New(),
	})

	return NewProcessorSink(p), subs
}

func TestDispatch_SpawnWithRankingsRunsBothPasses(t *testing.T) {
	sink, subs := newSinkFixture()

	payload := `{"pokemon_id":147,"latitude":34,"longitude":-117,"rankings":[{"league":"great","cp":1450,"rank":1,"percent":99.5}]}`
	require.NoError(t, sink.Dispatch(context.Background(), "pokemon", []byte(payload)))
	assert.Equal(t, []string{"pokemon", "pvp"}, subs.calls)
}

func TestDispatch_SpawnWithoutRankingsSkipsPvP(t *testing.T) {
	sink, subs := newSinkFixture()

	payload := `{"pokemon_id":147,"latitude":34,"longitude":-117}`
	require.NoError(t, sink.Dispatch(context.Background(), "pokemon", []byte(payload)))
	assert.Equal(t, []string{"pokemon"}, subs.calls)
}

func TestDispatch_RoutesEachKind(t *testing.T) {
	tests := []struct {
		kind     string
		payload  string
		wantCall string
	}{
		{kind: "raid", payload: `{"pokemon_id":147,"gym_name":"Central"}`, wantCall: "raid"},
		{kind: "quest", payload: `{"task":"Catch","reward":"Stardust"}`, wantCall: "all"},
		{kind: "invasion", payload: `{"grunt_type":6}`, wantCall: "invasion"},
		{kind: "lure", payload: `{"lure_type":"glacial"}`, wantCall: "lure"},
		{kind: "pvp", payload: `{"pokemon_id":147,"rankings":[]}`, wantCall: "pvp"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			sink, subs := newSinkFixture()
			require.NoError(t, sink.Dispatch(context.Background(), tt.kind, []byte(tt.payload)))
			assert.Equal(t, []string{tt.wantCall}, subs.calls)
		})
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	sink, _ := newSinkFixture()

	err := sink.Dispatch(context.Background(), "weather", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestDispatch_MalformedPayload(t *testing.T) {
	sink, subs := newSinkFixture()

	err := sink.Dispatch(context.Background(), "raid", []byte(`{"pokemon_id":`))
	require.Error(t, err)
	assert.Empty(t, subs.calls)
}

func TestDispatch_UnknownSpeciesDiscardedQuietly(t *testing.T) {
	sink, subs := newSinkFixture()

	payload := `{"pokemon_id":9999,"latitude":34,"longitude":-117}`
	require.NoError(t, sink.Dispatch(context.Background(), "pokemon", []byte(payload)))
	assert.Empty(t, subs.calls)
}
