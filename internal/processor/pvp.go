package processor

import (
	"context"
	"log/slog"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
	"scout/internal/matcher"
)

// ProcessPvP matches a spawn's league rankings against PvP subscriptions.
func (p *Processor) ProcessPvP(ctx context.Context, event *entity.SpawnEvent) error {
	info, ok := p.catalog.Pokemon(event.PokemonID)
	if !ok {
		p.logger.Debug("[PvP] Unknown species, discarding event",
			slog.Int("pokemon_id", event.PokemonID),
		)

		return nil
	}

	subs, err := p.subs.FindByPvPPokemonID(ctx, event.PokemonID)
	if err != nil {
		return errors.Wrap(err, "fetch pvp candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusPvP) {
			continue
		}

		crit := matchPvPCriteria(sub.PvP, event.PokemonID, event.Form)
		if crit == nil {
			continue
		}

		ranking, ok := firstQualifyingRanking(event.Rankings, crit)
		if !ok {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[PvP] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposePvP(event, ranking, info.Name, areaName(area))
		p.enqueue(ctx, sub, entity.KindPvP, msg, areaName(area), nil)
	}

	return nil
}

func matchPvPCriteria(items []entity.PvPCriteria, pokemonID int, form string) *entity.PvPCriteria {
	for i := range items {
		if items[i].PokemonID == pokemonID && entity.FormMatches(items[i].Form, form) {
			return &items[i]
		}
	}

	return nil
}

func firstQualifyingRanking(rankings []entity.PvPRanking, crit *entity.PvPCriteria) (entity.PvPRanking, bool) {
	for _, r := range rankings {
		if matcher.MatchesPvP(r, crit) {
			return r, true
		}
	}

	return entity.PvPRanking{}, false
}
