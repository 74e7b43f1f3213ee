// Package processor matches ingested game events against candidate
// subscriptions and enqueues notifications for matched ones.
package processor

import (
	"context"
	"log/slog"

	"scout/config"
	"scout/internal/domain/entity"
	"scout/internal/domain/repository"
	"scout/internal/domain/service"
	"scout/internal/matcher"
	"scout/internal/queue"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

// Processor orchestrates candidate lookup, eligibility checks, criteria
// matching and location matching for every event kind. It only reads shared
// subscription and catalog data; per-event state lives in a geofence cache
// scoped to one processing pass.
type Processor struct {
	cfg       *config.Config
	logger    *slog.Logger
	subs      repository.SubscriptionRepository
	areas     repository.GeofenceRepository
	catalog   *entity.Catalog
	messenger service.Messenger
	composer  service.MessageComposer
	metrics   service.MetricsSink
	queue     *queue.NotificationQueue
	pace      *rate.Limiter
}

// Params holds dependencies for the Processor.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Subs      repository.SubscriptionRepository
	Areas     repository.GeofenceRepository
	Catalog   *entity.Catalog
	Messenger service.Messenger
	Composer  service.MessageComposer
	Metrics   service.MetricsSink
	Queue     *queue.NotificationQueue
}

// New creates an event processor.
func New(params Params) *Processor {
	return &Processor{
		cfg:       params.Config,
		logger:    params.Logger,
		subs:      params.Subs,
		areas:     params.Areas,
		catalog:   params.Catalog,
		messenger: params.Messenger,
		composer:  params.Composer,
		metrics:   params.Metrics,
		queue:     params.Queue,
		pace:      rate.NewLimiter(rate.Every(params.Config.Notify.CandidatePacing), 1),
	}
}

// admit runs the per-candidate short-circuit checks shared by all event
// kinds: subscription enabled for the kind, guild configured and enabled,
// and the external eligibility check. A failed eligibility check skips the
// candidate only; it never aborts the batch.
func (p *Processor) admit(ctx context.Context, sub *entity.Subscription, kind entity.NotificationStatus) bool {
	if sub == nil || !sub.Enabled() || !sub.Status.Has(kind) {
		return false
	}

	guild, ok := p.cfg.Guild(sub.GuildID)
	if !ok {
		p.logger.Debug("[Processor] Subscription for unconfigured guild",
			slog.Uint64("guild_id", sub.GuildID),
			slog.Uint64("user_id", sub.UserID),
		)

		return false
	}
	if !guild.SubscriptionsEnabled {
		return false
	}

	eligible, err := p.messenger.IsEligible(ctx, sub.GuildID, sub.UserID)
	if err != nil {
		p.logger.Warn("[Processor] Eligibility check failed, skipping candidate",
			slog.Uint64("user_id", sub.UserID),
			slog.Any("error", err),
		)

		return false
	}
	if !eligible {
		p.logger.Debug("[Processor] User not eligible for notifications",
			slog.Uint64("user_id", sub.UserID),
		)
	}

	return eligible
}

// locationMatch applies the distance-or-area rule: a positive radius with the
// event inside it matches, and so does a resolved area listed on the criteria
// item. Either clause suffices.
func (p *Processor) locationMatch(sub *entity.Subscription, areas []string, area *entity.GeofenceArea, point orb.Point) bool {
	distanceMatch := sub.RadiusM > 0 && geo.Distance(sub.Anchor(), point) <= sub.RadiusM
	areaMatch := area != nil && matcher.ContainsArea(areas, area.Name)

	return distanceMatch || areaMatch
}

// enqueue wraps a rendered message into a queue item and applies the
// inter-candidate pacing delay.
func (p *Processor) enqueue(ctx context.Context, sub *entity.Subscription, kind entity.EventKind, msg *entity.Message, area string, spawn *entity.SpawnStats) {
	item := entity.NewNotificationItem(sub, kind, msg, area)
	item.Spawn = spawn

	if !p.queue.Enqueue(item) {
		p.logger.Warn("[Processor] Queue closed, dropping notification",
			slog.Uint64("user_id", sub.UserID),
			slog.String("kind", string(kind)),
		)

		return
	}

	p.metrics.NotificationMatched(kind)

	// Pace matched candidates to avoid saturating the messaging API.
	if err := p.pace.Wait(ctx); err != nil {
		p.logger.Debug("[Processor] Pacing interrupted", slog.Any("error", err))
	}
}

func areaName(area *entity.GeofenceArea) string {
	if area == nil {
		return ""
	}

	return area.Name
}
