package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RingColumn stores a polygon ring as a jsonb array of [lng, lat] pairs.
type RingColumn orb.Ring

// Value implements driver.Valuer.
func (r RingColumn) Value() (driver.Value, error) {
	data, err := json.Marshal(orb.Ring(r))
	if err != nil {
		return nil, errors.Wrap(err, "marshal boundary")
	}

	return string(data), nil
}

// Scan implements sql.Scanner.
func (r *RingColumn) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*r = nil

		return nil
	case []byte:
		return errors.Wrap(json.Unmarshal(data, (*orb.Ring)(r)), "unmarshal boundary")
	case string:
		return errors.Wrap(json.Unmarshal([]byte(data), (*orb.Ring)(r)), "unmarshal boundary")
	default:
		return errors.Errorf("unsupported jsonb source type %T", src)
	}
}

// GeofenceAreaModel is the GORM-specific struct for the 'geofence_areas'
// table. Area names are unique within a guild.
type GeofenceAreaModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	GuildID  uint64     `gorm:"not null;uniqueIndex:idx_geofence_areas_guild_name"`
	Name     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_geofence_areas_guild_name"`
	Boundary RingColumn `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (GeofenceAreaModel) TableName() string {
	return "geofence_areas"
}
