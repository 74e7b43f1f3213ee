package repository

import (
	"context"

	"scout/internal/domain/entity"
)

// GeofenceRepository provides the named polygon areas of a guild.
type GeofenceRepository interface {
	// ListAreas returns a guild's areas ordered by name. Resolution tests
	// containment in this order and keeps the first match.
	ListAreas(ctx context.Context, guildID uint64) ([]*entity.GeofenceArea, error)
}
