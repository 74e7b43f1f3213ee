package postgres

import (
	"context"

	"scout/internal/domain/entity"
	"scout/internal/domain/repository"
	"scout/internal/infra/persistence/model"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// geofenceRepository implements the repository.GeofenceRepository interface.
type geofenceRepository struct {
	db *gorm.DB
}

// NewGeofenceRepository is the constructor for geofenceRepository.
func NewGeofenceRepository(db *gorm.DB) repository.GeofenceRepository {
	return &geofenceRepository{
		db: db,
	}
}

// ListAreas retrieves a guild's areas ordered by name. Overlap resolution
// picks the first containing area of this ordering.
func (repo *geofenceRepository) ListAreas(ctx context.Context, guildID uint64) ([]*entity.GeofenceArea, error) {
	var areaModels []*model.GeofenceAreaModel

	if err := repo.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("name ASC").
		Find(&areaModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list geofence areas")
	}

	areas := make([]*entity.GeofenceArea, 0, len(areaModels))
	for _, areaM := range areaModels {
		areas = append(areas, toGeofenceDomain(areaM))
	}

	return areas, nil
}

var _ repository.GeofenceRepository = (*geofenceRepository)(nil)

// toGeofenceDomain converts a GORM GeofenceAreaModel to a domain GeofenceArea entity.
func toGeofenceDomain(data *model.GeofenceAreaModel) *entity.GeofenceArea {
	if data == nil {
		return nil
	}

	return &entity.GeofenceArea{
		ID:       data.ID,
		GuildID:  data.GuildID,
		Name:     data.Name,
		Boundary: orb.Ring(data.Boundary),
	}
}
