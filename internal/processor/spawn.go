package processor

import (
	"context"
	"log/slog"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
	"scout/internal/matcher"
)

// ProcessSpawn matches a wild spawn against spawn subscriptions.
func (p *Processor) ProcessSpawn(ctx context.Context, event *entity.SpawnEvent) error {
	info, ok := p.catalog.Pokemon(event.PokemonID)
	if !ok {
		p.logger.Debug("[Spawn] Unknown species, discarding event",
			slog.Int("pokemon_id", event.PokemonID),
		)

		return nil
	}

	subs, err := p.subs.FindByPokemonID(ctx, event.PokemonID)
	if err != nil {
		return errors.Wrap(err, "fetch spawn candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusPokemon) {
			continue
		}

		crit := matchPokemonCriteria(sub.Pokemon, event.PokemonID, event.Form)
		if crit == nil {
			continue
		}

		// Pinned stat triplets replace the IV/level/gender thresholds.
		if crit.HasStats() {
			if !matcher.MatchesIVList(event.Attack, event.Defense, event.Stamina, crit.IVList) {
				continue
			}
		} else if !matcher.MatchesIV(event.IV, crit.MinIV) ||
			!matcher.MatchesLevel(event.Level, crit.MinLevel, crit.MaxLevel) ||
			!matcher.MatchesGender(event.Gender, crit.Gender) {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[Spawn] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposeSpawn(event, info.Name, areaName(area))
		p.enqueue(ctx, sub, entity.KindPokemon, msg, areaName(area), &entity.SpawnStats{
			PokemonID: event.PokemonID,
			IV:        event.IV,
		})
	}

	return nil
}

func matchPokemonCriteria(items []entity.PokemonCriteria, pokemonID int, form string) *entity.PokemonCriteria {
	for i := range items {
		if items[i].PokemonID == pokemonID && entity.FormMatches(items[i].Form, form) {
			return &items[i]
		}
	}

	return nil
}
