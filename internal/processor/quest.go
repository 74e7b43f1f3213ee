package processor

import (
	"context"
	"log/slog"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/geofence"
	"scout/internal/matcher"
)

// ProcessQuest matches a field research task against quest subscriptions.
// Reward keywords are free text, so matching is a linear scan over all
// subscriptions rather than an indexed lookup.
func (p *Processor) ProcessQuest(ctx context.Context, event *entity.QuestEvent) error {
	subs, err := p.subs.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch quest candidates")
	}

	cache := geofence.NewCache(p.areas, event.Point())
	for _, sub := range subs {
		if !p.admit(ctx, sub, entity.StatusQuests) {
			continue
		}

		crit := matchQuestCriteria(sub.Quests, event.Reward)
		if crit == nil {
			continue
		}

		area, err := cache.Area(ctx, sub.GuildID)
		if err != nil {
			p.logger.Warn("[Quest] Geofence lookup failed, skipping candidate",
				slog.Uint64("guild_id", sub.GuildID),
				slog.Any("error", err),
			)

			continue
		}

		if !p.locationMatch(sub, crit.Areas, area, event.Point()) {
			continue
		}

		msg := p.composer.ComposeQuest(event, areaName(area))
		p.enqueue(ctx, sub, entity.KindQuest, msg, areaName(area), nil)
	}

	return nil
}

func matchQuestCriteria(items []entity.QuestCriteria, reward string) *entity.QuestCriteria {
	for i := range items {
		if matcher.MatchesKeyword(reward, items[i].RewardKeyword) {
			return &items[i]
		}
	}

	return nil
}
