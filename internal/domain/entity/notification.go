package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a rendered notification, opaque to the matching core.
type Message struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	MapURL string `json:"map_url"`
}

// SpawnStats carries the fields of a spawn event that the dispatcher needs
// for the ultra-rare SMS escalation decision.
type SpawnStats struct {
	PokemonID int     `json:"pokemon_id"`
	IV        float64 `json:"iv"`
}

// NotificationItem pairs a matched subscription with a rendered message.
// Created by an event processor, consumed exactly once by the dispatcher.
type NotificationItem struct {
	ID           uuid.UUID     `json:"id"`
	Subscription *Subscription `json:"subscription"`
	Kind         EventKind     `json:"kind"`
	Message      *Message      `json:"message"`
	Area         string        `json:"area"` // resolved geofence name, may be empty
	Spawn        *SpawnStats   `json:"spawn,omitempty"`
	EnqueuedAt   time.Time     `json:"enqueued_at"`
}

// NewNotificationItem builds a queue item for a matched subscription.
func NewNotificationItem(sub *Subscription, kind EventKind, msg *Message, area string) *NotificationItem {
	return &NotificationItem{
		ID:           uuid.New(),
		Subscription: sub,
		Kind:         kind,
		Message:      msg,
		Area:         area,
		EnqueuedAt:   time.Now(),
	}
}
