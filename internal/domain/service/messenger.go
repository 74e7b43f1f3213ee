// Package service defines the interfaces the matching core depends on for
// delivery, composition and observability.
package service

import (
	"context"

	"scout/internal/domain/entity"
)

// Messenger is the messaging-platform adapter the dispatcher delivers through.
type Messenger interface {
	// IsEligible reports whether the user can currently receive notifications
	// (e.g. has a registered, active device).
	IsEligible(ctx context.Context, guildID, userID uint64) (bool, error)

	// SendDirect delivers a rendered message directly to the user.
	SendDirect(ctx context.Context, guildID, userID uint64, msg *entity.Message) error
}

// SMSSender delivers the ultra-rare escalation text messages.
type SMSSender interface {
	// Send delivers body to the phone number. Gated by configuration;
	// implementations return an error when sending is disabled.
	Send(ctx context.Context, body, toNumber string) error
}
