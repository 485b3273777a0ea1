package model

import (
	"errors"
	"time"
)

// ErrBadRating is returned when a feedback rating falls outside 1..5.
var ErrBadRating = errors.New("rating must be between 1 and 5")

// Feedback is a customer's review of one completed booking.  At most one
// feedback exists per booking; the store enforces that on creation.
//
// Fields:
//  ID         - generated identifier (FB0001).
//  BookingID  - the reviewed booking.
//  CustomerID - author of the review.
//  BarberID   - barber the review counts against.
//  Rating     - integer 1..5.
//  Comment    - free text, may be empty.
//  CreatedAt  - creation timestamp (UTC).
type Feedback struct {
	ID         string    `json:"feedback_id"`
	BookingID  string    `json:"booking_id"`
	CustomerID string    `json:"customer_id"`
	BarberID   string    `json:"barber_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the rating range.
func (f *Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return ErrBadRating
	}
	return nil
}
