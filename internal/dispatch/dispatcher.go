// Package dispatch consumes the notification queue and delivers messages,
// enforcing the per-subscription rate limit and the SMS escalation rules.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"scout/config"
	"scout/internal/domain/entity"
	"scout/internal/domain/repository"
	"scout/internal/domain/service"
	"scout/internal/limiter"
	"scout/internal/queue"

	"go.uber.org/fx"
)

// smsBodyLimit caps the escalation text length.
const smsBodyLimit = 120

// Dispatcher is the single consumer of the notification queue. All limiter
// state is owned by its loop; nothing else reads or writes it.
type Dispatcher struct {
	cfg       *config.Config
	logger    *slog.Logger
	queue     *queue.NotificationQueue
	limiter   *limiter.Limiter
	subs      repository.SubscriptionRepository
	messenger service.Messenger
	sms       service.SMSSender
	catalog   *entity.Catalog
	metrics   service.MetricsSink
}

// Params holds dependencies for the Dispatcher.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Queue     *queue.NotificationQueue
	Subs      repository.SubscriptionRepository
	Messenger service.Messenger
	SMS       service.SMSSender `optional:"true"`
	Catalog   *entity.Catalog
	Metrics   service.MetricsSink
}

// New creates a dispatcher with a fresh rate limiter.
func New(params Params) *Dispatcher {
	return &Dispatcher{
		cfg:       params.Config,
		logger:    params.Logger,
		queue:     params.Queue,
		limiter:   limiter.New(params.Config.Notify.MaxPerWindow, params.Config.Notify.Window),
		subs:      params.Subs,
		messenger: params.Messenger,
		sms:       params.SMS,
		catalog:   params.Catalog,
		metrics:   params.Metrics,
	}
}

// Run consumes the queue until it is closed and drained. Closing the queue
// is the shutdown signal; ctx bounds the individual delivery calls.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("[Dispatcher] Consumer loop started")

	for {
		item, ok := d.queue.Dequeue()
		if !ok {
			d.logger.Info("[Dispatcher] Queue closed, consumer loop stopping")

			return
		}

		depth := d.queue.Len()
		d.metrics.QueueDepth(depth)
		if depth > d.cfg.Notify.QueueWarnLength {
			d.logger.Warn("[Dispatcher] Queue is backing up",
				slog.Int("length", depth),
				slog.Int("threshold", d.cfg.Notify.QueueWarnLength),
			)
		}

		d.deliver(ctx, item)

		// Pace deliveries to stay under the messaging API's burst limits.
		select {
		case <-time.After(d.cfg.Notify.DeliveryPacing):
		case <-ctx.Done():
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, item *entity.NotificationItem) {
	sub := item.Subscription

	if !d.limiter.Allow(sub.ID) {
		d.metrics.NotificationLimited()
		d.handleLimited(ctx, sub)

		return
	}

	// A non-limited delivery re-arms the one-time rate-limit notice.
	d.limiter.ClearWarning(sub.ID)

	if d.shouldEscalate(sub, item) {
		d.sendSMS(ctx, sub, item)
	}

	if err := d.messenger.SendDirect(ctx, sub.GuildID, sub.UserID, item.Message); err != nil {
		// No retry: the item is consumed either way.
		d.logger.Error("[Dispatcher] Direct delivery failed",
			slog.Uint64("user_id", sub.UserID),
			slog.String("kind", string(item.Kind)),
			slog.Any("error", err),
		)

		return
	}

	d.metrics.NotificationSent(item.Kind)
}

// handleLimited sends the one-time rate-limit notice and disables the
// subscription. The user has to re-enable notifications explicitly.
func (d *Dispatcher) handleLimited(ctx context.Context, sub *entity.Subscription) {
	if d.limiter.Warned(sub.ID) {
		return
	}

	notice := &entity.Message{
		Title: "Notifications disabled",
		Body: fmt.Sprintf(
			"You received more than %d notifications within %s, so your subscriptions have been disabled. Tighten your filters and re-enable them.",
			d.limiter.Max(), d.limiter.Window(),
		),
	}
	if err := d.messenger.SendDirect(ctx, sub.GuildID, sub.UserID, notice); err != nil {
		d.logger.Error("[Dispatcher] Rate-limit notice delivery failed",
			slog.Uint64("user_id", sub.UserID),
			slog.Any("error", err),
		)
	}

	d.limiter.MarkWarned(sub.ID)

	if err := d.subs.UpdateStatus(ctx, sub.ID, entity.StatusNone); err != nil {
		d.logger.Error("[Dispatcher] Auto-disable failed",
			slog.Uint64("user_id", sub.UserID),
			slog.Any("error", err),
		)

		return
	}

	d.logger.Warn("[Dispatcher] Subscription rate limited and disabled",
		slog.Uint64("guild_id", sub.GuildID),
		slog.Uint64("user_id", sub.UserID),
	)
}

// shouldEscalate applies the ultra-rare SMS gate: spawn notifications only,
// opted-in phone number, allow-listed user, allow-listed species that is
// inherently rare or at or above the configured IV floor.
func (d *Dispatcher) shouldEscalate(sub *entity.Subscription, item *entity.NotificationItem) bool {
	smsCfg := d.cfg.SMS
	if d.sms == nil || smsCfg == nil || !smsCfg.Enabled {
		return false
	}
	if item.Spawn == nil || sub.PhoneNumber == "" {
		return false
	}

	if !d.userMayReceiveSMS(sub) {
		return false
	}

	if !slices.Contains(smsCfg.PokemonIDs, item.Spawn.PokemonID) {
		return false
	}

	info, ok := d.catalog.Pokemon(item.Spawn.PokemonID)
	if ok && info.Rare {
		return true
	}

	return item.Spawn.IV >= smsCfg.MinimumIV
}

func (d *Dispatcher) userMayReceiveSMS(sub *entity.Subscription) bool {
	if guild, ok := d.cfg.Guild(sub.GuildID); ok && guild.OwnerID == sub.UserID {
		return true
	}

	return slices.Contains(d.cfg.SMS.AllowedUserIDs, sub.UserID)
}

func (d *Dispatcher) sendSMS(ctx context.Context, sub *entity.Subscription, item *entity.NotificationItem) {
	body := smsBody(item)
	if err := d.sms.Send(ctx, body, sub.PhoneNumber); err != nil {
		d.logger.Error("[Dispatcher] SMS escalation failed",
			slog.Uint64("user_id", sub.UserID),
			slog.Any("error", err),
		)

		return
	}

	d.logger.Info("[Dispatcher] SMS escalation sent",
		slog.Uint64("user_id", sub.UserID),
		slog.Int("pokemon_id", item.Spawn.PokemonID),
	)
}

// smsBody renders a plain-text body: markdown stripped, truncated, with the
// area prefix and map link appended.
func smsBody(item *entity.NotificationItem) string {
	text := strings.ReplaceAll(item.Message.Body, "**", "")
	// Truncate on runes so multi-byte names are never split mid-character.
	if runes := []rune(text); len(runes) > smsBodyLimit {
		text = string(runes[:smsBodyLimit])
	}

	var b strings.Builder
	if item.Area != "" {
		b.WriteString(item.Area)
		b.WriteString(": ")
	}
	b.WriteString(text)
	if item.Message.MapURL != "" {
		b.WriteString("\n")
		b.WriteString(item.Message.MapURL)
	}

	return b.String()
}
