package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/rakafardani/barbershop-booking/internal/catalog"
)

// Booking statuses.  The strings are part of the persisted format.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

// CancelWindow is the minimum time that must remain before the appointment
// for a cancellation to be accepted.
const CancelWindow = 2 * time.Hour

// Lifecycle errors.  Handlers render these as declined actions with the
// message as the user-visible reason; no state change accompanies them.
var (
	ErrTerminalState  = errors.New("booking is already completed or canceled")
	ErrTooLate        = errors.New("cannot cancel less than 2 hours before appointment")
	ErrNotStartable   = errors.New("only a scheduled booking can be started")
	ErrBadAppointment = errors.New("invalid booking date or time")
)

// Booking is one appointment: a customer, an optional barber, an embedded
// immutable service snapshot and a position in the lifecycle
// scheduled -> in-progress -> completed, or scheduled -> canceled.
//
// Fields:
//  ID          - generated identifier (BK0001).
//  CustomerID  - the booking customer.
//  BarberID    - chosen barber, empty for "any available".
//  Service     - composed service value owned by this booking.
//  BookingDate - appointment date, ISO format "2006-01-02".
//  BookingTime - appointment time, "15:04" or "15:04:05".
//  Status      - current lifecycle state.
//  CreatedAt   - creation timestamp (UTC).
type Booking struct {
	ID          string          `json:"booking_id"`
	CustomerID  string          `json:"customer_id"`
	BarberID    string          `json:"barber_id,omitempty"`
	Service     catalog.Service `json:"service"`
	BookingDate string          `json:"booking_date"`
	BookingTime string          `json:"booking_time"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StartsAt combines the booking date and time into a single local
// timestamp.  Both "15:04" and "15:04:05" time forms are accepted.
func (b *Booking) StartsAt() (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, b.BookingDate+" "+b.BookingTime, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadAppointment
}

// terminal reports whether no further transition is legal.
func (b *Booking) terminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCanceled
}

// Confirmed builds the confirmation event emitted when a booking is first
// stored.  Creation itself happens in the store; the event is produced here
// so all lifecycle events live next to the transitions that cause them.
func (b *Booking) Confirmed() Event {
	return newEvent(EventConfirmation, b,
		fmt.Sprintf("Booking %s confirmed for %s at %s", b.ID, b.BookingDate, b.BookingTime))
}

// Cancel transitions scheduled/in-progress -> canceled and returns the
// cancellation event.  It declines with ErrTerminalState on a completed or
// canceled booking and with ErrTooLate when less than CancelWindow remains
// before the appointment; a declined cancel leaves the status untouched.
func (b *Booking) Cancel(now time.Time) (Event, error) {
	if b.terminal() {
		return Event{}, ErrTerminalState
	}
	startsAt, err := b.StartsAt()
	if err != nil {
		return Event{}, err
	}
	if startsAt.Sub(now) < CancelWindow {
		return Event{}, ErrTooLate
	}
	b.Status = StatusCanceled
	return newEvent(EventCancellation, b,
		fmt.Sprintf("Booking %s has been canceled", b.ID)), nil
}

// Start transitions scheduled -> in-progress.  Unlike Cancel and Complete
// it emits no event; starting a booking notifies nobody.
func (b *Booking) Start() error {
	if b.Status != StatusScheduled {
		return ErrNotStartable
	}
	b.Status = StatusInProgress
	return nil
}

// Complete transitions any non-terminal state -> completed and returns the
// completion event.  Completing a completed or canceled booking is refused.
func (b *Booking) Complete() (Event, error) {
	if b.terminal() {
		return Event{}, ErrTerminalState
	}
	b.Status = StatusCompleted
	return newEvent(EventCompletion, b,
		fmt.Sprintf("Booking %s is completed. Please provide feedback!", b.ID)), nil
}
