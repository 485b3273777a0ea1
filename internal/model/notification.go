package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one rendered message delivered to a user as the result
// of a booking lifecycle event.  Delivery is synchronous and at-most-once;
// nothing is persisted, so a notification missed is a notification lost.
//
// Fields:
//  ID      - generated UUID.
//  UserID  - target user.
//  Type    - the originating event type (confirmation, cancellation, ...).
//  Message - human-readable text.
//  Channel - delivery channel tag; "inbox" for the in-process inbox,
//            "queue" for messages handed to the broker.
//  SentAt  - when the observer produced the notification.
type Notification struct {
	ID      string    `json:"notification_id"`
	UserID  string    `json:"user_id"`
	Type    string    `json:"notification_type"`
	Message string    `json:"message"`
	Channel string    `json:"channel"`
	SentAt  time.Time `json:"sent_at"`
}

// NewNotification builds a notification from an event for the given channel.
func NewNotification(ev Event, channel string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		UserID:  ev.Payload["user_id"],
		Type:    ev.Type,
		Message: ev.Payload["message"],
		Channel: channel,
		SentAt:  time.Now().UTC(),
	}
}
