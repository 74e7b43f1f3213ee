package processor

import (
	"context"
	"log/slog"
	"slices"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
)

// ProcessInvasion matches a pokestop invasion against invasion subscriptions
// by the grunt type's encounter reward species.
func (p *Processor) ProcessInvasion(ctx context.Context, event *entity.InvasionEvent) error {
	grunt, ok := p.catalog.Grunt(event.GruntType)
	if !ok || len(grunt.EncounterRewards) == 0 {
		p.logger.Debug("[Invasion] Unknown grunt type, discarding event",
			slog.Int("grunt_type", event.GruntType),
		)

		return nil
	}

	subs, err := p.subs.FindByEncounterRewards(ctx, grunt.EncounterRewards)
	if err != nil {
		return errors.Wrap(err, "fetch invasion candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusInvasions) {
			continue
		}

		crit := matchInvasionCriteria(sub.Invasions, grunt.EncounterRewards)
		if crit == nil {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[Invasion] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposeInvasion(event, grunt.Name, areaName(area))
		p.enqueue(ctx, sub, entity.KindInvasion, msg, areaName(area), nil)
	}

	return nil
}

func matchInvasionCriteria(items []entity.InvasionCriteria, rewards []int) *entity.InvasionCriteria {
	for i := range items {
		if slices.Contains(rewards, items[i].RewardPokemonID) {
			return &items[i]
		}
	}

	return nil
}
