package processor

import (
	"context"
	"log/slog"
	"strings"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
)

// ProcessLure matches a pokestop lure activation against lure subscriptions.
func (p *Processor) ProcessLure(ctx context.Context, event *entity.LureEvent) error {
	subs, err := p.subs.FindByLureType(ctx, event.LureType)
	if err != nil {
		return errors.Wrap(err, "fetch lure candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusLures) {
			continue
		}

		crit := matchLureCriteria(sub.Lures, event.LureType)
		if crit == nil {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[Lure] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposeLure(event, areaName(area))
		p.enqueue(ctx, sub, entity.KindLure, msg, areaName(area), nil)
	}

	return nil
}

func matchLureCriteria(items []entity.LureCriteria, lureType string) *entity.LureCriteria {
	for i := range items {
		if strings.EqualFold(items[i].LureType, lureType) {
			return &items[i]
		}
	}

	return nil
}
