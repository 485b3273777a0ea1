package model

// Booking lifecycle event types.
const (
	EventConfirmation = "confirmation"
	EventCancellation = "cancellation"
	EventCompletion   = "completion"
)

// Event is an emitted lifecycle notification.  Lifecycle methods return
// events instead of calling observers directly; whoever drove the
// transition hands the event to the notifier for dispatch.  That keeps the
// booking model free of live observer references and makes delivery
// failures isolable from state changes.
//
// Payload is an open key-value bag.  Every event carries at least
// "user_id" (the notification target) and "message" (human-readable
// text); booking events add "service", "date" and "time" so consumers
// can render the appointment without a store lookup.
type Event struct {
	Type      string            `json:"type"`
	BookingID string            `json:"booking_id"`
	Payload   map[string]string `json:"payload"`
}

// newEvent assembles an event targeted at the booking's customer.
func newEvent(eventType string, b *Booking, message string) Event {
	return Event{
		Type:      eventType,
		BookingID: b.ID,
		Payload: map[string]string{
			"user_id": b.CustomerID,
			"message": message,
			"service": b.Service.Description(),
			"date":    b.BookingDate,
			"time":    b.BookingTime,
		},
	}
}
