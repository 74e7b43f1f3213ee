// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"scout/internal/domain/entity"
	"scout/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// SubscriptionRepository provides indexed retrieval of candidate
// subscriptions by event discriminant, plus the single write path the
// dispatcher uses for the rate limiter's auto-disable.
type SubscriptionRepository interface {
	// FindByPokemonID returns subscriptions with a spawn criteria item for the species.
	FindByPokemonID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error)

	// FindByPvPPokemonID returns subscriptions with a PvP criteria item for the species.
	FindByPvPPokemonID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error)

	// FindByRaidBossID returns subscriptions with a raid criteria item for the species.
	FindByRaidBossID(ctx context.Context, pokemonID int) ([]*entity.Subscription, error)

	// FindByEncounterRewards returns subscriptions with an invasion criteria item
	// for any of the given reward species.
	FindByEncounterRewards(ctx context.Context, pokemonIDs []int) ([]*entity.Subscription, error)

	// FindByLureType returns subscriptions with a lure criteria item of the given type.
	FindByLureType(ctx context.Context, lureType string) ([]*entity.Subscription, error)

	// FindAll returns every subscription. Quest matching needs a full scan for
	// its keyword substring test; there is no index on free-text keywords.
	FindAll(ctx context.Context) ([]*entity.Subscription, error)

	// UpdateStatus overwrites the subscription's notification status bitmask.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.NotificationStatus) error
}
