// Package model holds the GORM-specific structs mapping domain entities to
// PostgreSQL tables.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"scout/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// JSONColumn stores a slice as a jsonb column. Criteria lists are queried
// with jsonb containment, so the column shape matches the entity JSON.
type JSONColumn[T any] []T

// Value implements driver.Valuer.
func (c JSONColumn[T]) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}

	data, err := json.Marshal([]T(c))
	if err != nil {
		return nil, errors.Wrap(err, "marshal jsonb column")
	}

	return string(data), nil
}

// Scan implements sql.Scanner.
func (c *JSONColumn[T]) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*c = nil

		return nil
	case []byte:
		return errors.Wrap(json.Unmarshal(data, (*[]T)(c)), "unmarshal jsonb column")
	case string:
		return errors.Wrap(json.Unmarshal([]byte(data), (*[]T)(c)), "unmarshal jsonb column")
	default:
		return errors.Errorf("unsupported jsonb source type %T", src)
	}
}

// SubscriptionModel is the GORM-specific struct for the 'subscriptions' table.
// One row per user per guild; criteria lists live in jsonb columns indexed
// with GIN for containment lookups.
type SubscriptionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	GuildID     uint64    `gorm:"not null;uniqueIndex:idx_subscriptions_guild_user"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_subscriptions_guild_user"`
	Status      int16     `gorm:"not null;default:0"`
	Latitude    float64   `gorm:"not null;default:0"`
	Longitude   float64   `gorm:"not null;default:0"`
	RadiusM     float64   `gorm:"type:decimal(10,2);not null;default:0"`
	IconStyle   string    `gorm:"type:varchar(50)"`
	PhoneNumber string    `gorm:"type:varchar(32)"`

	Pokemon   JSONColumn[entity.PokemonCriteria]  `gorm:"type:jsonb;not null;default:'[]';index:idx_subscriptions_pokemon,type:gin"`
	PvP       JSONColumn[entity.PvPCriteria]      `gorm:"column:pvp;type:jsonb;not null;default:'[]';index:idx_subscriptions_pvp,type:gin"`
	Raids     JSONColumn[entity.RaidCriteria]     `gorm:"type:jsonb;not null;default:'[]';index:idx_subscriptions_raids,type:gin"`
	Gyms      JSONColumn[entity.GymCriteria]      `gorm:"type:jsonb;not null;default:'[]'"`
	Quests    JSONColumn[entity.QuestCriteria]    `gorm:"type:jsonb;not null;default:'[]'"`
	Invasions JSONColumn[entity.InvasionCriteria] `gorm:"type:jsonb;not null;default:'[]'"`
	Lures     JSONColumn[entity.LureCriteria]     `gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
