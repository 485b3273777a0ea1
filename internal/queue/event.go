// Package queue defines the message payload exchanged over the broker and
// the background consumer that drains it.
package queue

// BookingEventMessage is the wire form of a booking lifecycle event as
// published to the booking.events queue.  It carries enough for downstream
// consumers to log or notify without querying the entity store.
type BookingEventMessage struct {
	Type        string `json:"type"`
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	Message     string `json:"message"`
	Service     string `json:"service,omitempty"`
	BookingDate string `json:"booking_date,omitempty"`
	BookingTime string `json:"booking_time,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
