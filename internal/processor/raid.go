package processor

import (
	"context"
	"log/slog"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
	"scout/internal/matcher"
)

// ProcessRaid matches a raid boss hatch against raid subscriptions.
func (p *Processor) ProcessRaid(ctx context.Context, event *entity.RaidEvent) error {
	info, ok := p.catalog.Pokemon(event.PokemonID)
	if !ok {
		p.logger.Debug("[Raid] Unknown raid boss, discarding event",
			slog.Int("pokemon_id", event.PokemonID),
		)

		return nil
	}

	subs, err := p.subs.FindByRaidBossID(ctx, event.PokemonID)
	if err != nil {
		return errors.Wrap(err, "fetch raid candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusRaids) {
			continue
		}

		// A non-empty gym list restricts raids to the subscribed gyms.
		if len(sub.Gyms) > 0 && !gymListed(sub.Gyms, event.GymName) {
			continue
		}

		crit := matchRaidCriteria(sub.Raids, event.PokemonID, event.Form)
		if crit == nil {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[Raid] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposeRaid(event, info.Name, areaName(area))
		p.enqueue(ctx, sub, entity.KindRaid, msg, areaName(area), nil)
	}

	return nil
}

func matchRaidCriteria(items []entity.RaidCriteria, pokemonID int, form string) *entity.RaidCriteria {
	for i := range items {
		if items[i].PokemonID == pokemonID && entity.FormMatches(items[i].Form, form) {
			return &items[i]
		}
	}

	return nil
}

func gymListed(gyms []entity.GymCriteria, gymName string) bool {
	for _, g := range gyms {
		if matcher.MatchesGymName(gymName, g.Name) {
			return true
		}
	}

	return false
}
