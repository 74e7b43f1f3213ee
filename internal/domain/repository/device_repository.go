package repository

import (
	"context"

	"scout/internal/domain/entity"
	"scout/internal/errors"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a user has no registered device.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository stores push-capable devices registered by users.
type DeviceRepository interface {
	// FindActiveDevice returns the most recently updated active device for a user.
	FindActiveDevice(ctx context.Context, userID uint64) (*entity.UserDevice, error)

	// Deactivate marks a device inactive, used when its push token is rejected.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
