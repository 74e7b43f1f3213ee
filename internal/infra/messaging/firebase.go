// Package messaging delivers notifications through Firebase Cloud Messaging.
package messaging

import (
	"context"
	"log/slog"

	"scout/config"
	"scout/internal/domain/entity"
	"scout/internal/domain/repository"
	"scout/internal/domain/service"
	"scout/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

type firebaseMessenger struct {
	client  *messaging.Client
	devices repository.DeviceRepository
	logger  *slog.Logger
}

// NewFirebaseMessenger creates a Messenger backed by Firebase Cloud Messaging.
// Eligibility means the user has an active registered device.
func NewFirebaseMessenger(ctx context.Context, credentialsPath string, devices repository.DeviceRepository, logger *slog.Logger) (service.Messenger, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseMessenger{
		client:  client,
		devices: devices,
		logger:  logger,
	}, nil
}

// IsEligible reports whether the user has an active device to deliver to.
func (m *firebaseMessenger) IsEligible(ctx context.Context, _, userID uint64) (bool, error) {
	if _, err := m.devices.FindActiveDevice(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check device eligibility")
	}

	return true, nil
}

// SendDirect pushes the message to the user's active device. Devices whose
// tokens the push service rejects are deactivated.
func (m *firebaseMessenger) SendDirect(ctx context.Context, _, userID uint64, msg *entity.Message) error {
	device, err := m.devices.FindActiveDevice(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve delivery device")
	}

	message := &messaging.Message{
		Token: device.FCMToken,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
	}
	if msg.MapURL != "" {
		message.Data = map[string]string{"map_url": msg.MapURL}
	}

	if _, err := m.client.Send(ctx, message); err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			if deactivateErr := m.devices.Deactivate(ctx, device.ID); deactivateErr != nil {
				m.logger.Error("[Messaging] Failed to deactivate rejected device",
					slog.String("device_id", device.ID.String()),
					slog.Any("error", deactivateErr),
				)
			} else {
				m.logger.Info("[Messaging] Deactivated device with rejected token",
					slog.Uint64("user_id", userID),
					slog.String("device_id", device.ID.String()),
				)
			}
		}

		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

// Params holds dependencies for the Firebase messenger.
type Params struct {
	fx.In

	Ctx     context.Context
	Config  *config.Config
	Devices repository.DeviceRepository
	Logger  *slog.Logger
}

// New provides the Messenger from configuration.
func New(params Params) (service.Messenger, error) {
	if params.Config.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	return NewFirebaseMessenger(params.Ctx, params.Config.Firebase.CredentialsPath, params.Devices, params.Logger)
}
