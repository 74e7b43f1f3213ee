// Package geofence resolves event coordinates to named guild areas by
// polygon containment.
package geofence

import (
	"context"
	"sync"

	"scout/internal/domain/entity"
	"scout/internal/domain/repository"

	"github.com/paulmach/orb"
)

// Resolve returns the first area in list order that contains the point, or
// nil when no area contains it. No match is a valid, non-error outcome.
// Overlap priority is list order; callers get areas ordered by name from the
// repository.
func Resolve(point orb.Point, areas []*entity.GeofenceArea) *entity.GeofenceArea {
	for _, area := range areas {
		if area.Contains(point) {
			return area
		}
	}

	return nil
}

// Cache resolves one event point against guild areas, memoizing per guild so
// resolution runs once per (guild, event) regardless of how many candidate
// subscriptions are checked. Safe for concurrent use, though each event
// processing pass owns its own cache.
type Cache struct {
	repo  repository.GeofenceRepository
	point orb.Point

	mu      sync.Mutex
	byGuild map[uint64]*entity.GeofenceArea
}

// NewCache creates a resolution cache for one event point.
func NewCache(repo repository.GeofenceRepository, point orb.Point) *Cache {
	return &Cache{
		repo:    repo,
		point:   point,
		byGuild: make(map[uint64]*entity.GeofenceArea),
	}
}

// Area resolves the event point within the guild's areas. The result,
// including a nil no-match, is cached for subsequent candidates.
func (c *Cache) Area(ctx context.Context, guildID uint64) (*entity.GeofenceArea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if area, ok := c.byGuild[guildID]; ok {
		return area, nil
	}

	areas, err := c.repo.ListAreas(ctx, guildID)
	if err != nil {
		return nil, err
	}

	area := Resolve(c.point, areas)
	c.byGuild[guildID] = area

	return area, nil
}
