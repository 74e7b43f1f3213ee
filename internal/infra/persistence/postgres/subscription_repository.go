// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"scout/internal/domain/entity"
	"scout/internal/domain/repository"
	"scout/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// criteriaContains builds a jsonb containment argument matching criteria
// items with the given field value, e.g. [{"pokemon_id": 147}].
func criteriaContains(field string, value any) (string, error) {
	data, err := json.Marshal([]map[string]any{{field: value}})
	if err != nil {
		return "", errors.Wrap(err, "marshal containment filter")
	}

	return string(data), nil
}

// FindByPokemonID retrieves enabled subscriptions with a spawn criteria item
// for the species.
func (repo *subscriptionRepository) FindByPokemonID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error) {
	filter, err := criteriaContains("pokemon_id", pokemonID)
	if err != nil {
		return nil, err
	}

	return repo.find(ctx, "pokemon @> ?", filter)
}

// FindByPvPPokemonID retrieves enabled subscriptions with a PvP criteria item
// for the species.
func (repo *subscriptionRepository) FindByPvPPokemonID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error) {
	filter, err := criteriaContains("pokemon_id", pokemonID)
	if err != nil {
		return nil, err
	}

	return repo.find(ctx, "pvp @> ?", filter)
}

// FindByRaidBossID retrieves enabled subscriptions with a raid criteria item
// for the boss species.
func (repo *subscriptionRepository) FindByRaidBossID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error) {
	filter, err := criteriaContains("pokemon_id", pokemonID)
	if err != nil {
		return nil, err
	}

	return repo.find(ctx, "raids @> ?", filter)
}

// FindByEncounterRewards retrieves enabled subscriptions whose invasion
// criteria overlap any of the grunt's reward species.
func (repo *subscriptionRepository) FindByEncounterRewards(ctx context.Context, rewards []int) ([]*entity.Subscription, error) {
	if len(rewards) == 0 {
		return []*entity.Subscription{}, nil
	}

	return repo.find(ctx,
		"EXISTS (SELECT 1 FROM jsonb_array_elements(invasions) AS item WHERE (item->>'reward_pokemon_id')::int IN ?)",
		rewards,
	)
}

// FindByLureType retrieves enabled subscriptions with a lure criteria item of
// the given type (case-insensitive).
func (repo *subscriptionRepository) FindByLureType(ctx context.Context, lureType string) ([]*entity.Subscription, error) {
	return repo.find(ctx,
		"EXISTS (SELECT 1 FROM jsonb_array_elements(lures) AS item WHERE lower(item->>'lure_type') = lower(?))",
		lureType,
	)
}

// FindAll retrieves every enabled subscription. Quest matching scans this
// list linearly; keyword criteria have no indexable discriminant.
func (repo *subscriptionRepository) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	return repo.find(ctx, "", nil)
}

// UpdateStatus replaces the notification status bitmask of a subscription.
func (repo *subscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.NotificationStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("id = ?", id).
		Update("status", int16(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update subscription status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

func (repo *subscriptionRepository) find(ctx context.Context, condition string, arg any) ([]*entity.Subscription, error) {
	var subscriptionModels []*model.SubscriptionModel

	query := repo.db.WithContext(ctx).Where("status <> 0")
	if condition != "" {
		query = query.Where(condition, arg)
	}

	if err := query.Find(&subscriptionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find subscriptions")
	}

	subscriptions := make([]*entity.Subscription, 0, len(subscriptionModels))
	for _, subscriptionM := range subscriptionModels {
		subscriptions = append(subscriptions, toSubscriptionDomain(subscriptionM))
	}

	return subscriptions, nil
}

// --- Mapper Functions ---

// toSubscriptionDomain converts a GORM SubscriptionModel to a domain Subscription entity.
func toSubscriptionDomain(data *model.SubscriptionModel) *entity.Subscription {
	if data == nil {
		return nil
	}

	return &entity.Subscription{
		ID:          data.ID,
		GuildID:     data.GuildID,
		UserID:      data.UserID,
		Status:      entity.NotificationStatus(data.Status),
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		RadiusM:     data.RadiusM,
		IconStyle:   data.IconStyle,
		PhoneNumber: data.PhoneNumber,
		Pokemon:     data.Pokemon,
		PvP:         data.PvP,
		Raids:       data.Raids,
		Gyms:        data.Gyms,
		Quests:      data.Quests,
		Invasions:   data.Invasions,
		Lures:       data.Lures,
	}
}
