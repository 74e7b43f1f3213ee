package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice is a push-capable device registered by a user. A subscription
// is only eligible for delivery while its user has an active device.
type UserDevice struct {
	ID        uuid.UUID `json:"id"`
	UserID    uint64    `json:"user_id"`
	FCMToken  string    `json:"fcm_token"`
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
