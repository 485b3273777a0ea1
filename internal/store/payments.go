package store

import (
	"context"
	"sort"
	"time"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

// PayBooking creates a payment for the booking and processes it in the
// same write: the record starts pending and is immediately settled with a
// generated transaction id.  A booking can be paid once; canceled bookings
// cannot be paid at all.  The amount is the booking's composed service
// price at the time of payment.
func (s *EntityStore) PayBooking(_ context.Context, bookingID, method string, now time.Time) (model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.Bookings[bookingID]
	if !ok {
		return model.Payment{}, ErrNotFound
	}
	if b.Status == model.StatusCanceled {
		return model.Payment{}, ErrBookingCanceled
	}
	for _, p := range s.state.Payments {
		if p.BookingID == bookingID {
			return model.Payment{}, ErrPaymentExists
		}
	}
	p := model.Payment{
		ID:        s.nextIDLocked("PAY"),
		BookingID: bookingID,
		Amount:    b.Service.Price(),
		Method:    method,
		Status:    model.PaymentPending,
	}
	p.Process(now)
	s.state.Payments[p.ID] = p
	if err := s.persistLocked(); err != nil {
		return model.Payment{}, err
	}
	return copyPayment(p), nil
}

// PaymentForBooking returns the payment attached to a booking, if any.
func (s *EntityStore) PaymentForBooking(_ context.Context, bookingID string) (model.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Payments {
		if p.BookingID == bookingID {
			return copyPayment(p), true
		}
	}
	return model.Payment{}, false
}

// Payments lists every payment sorted by id.
func (s *EntityStore) Payments(_ context.Context) []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Payment, 0, len(s.state.Payments))
	for _, p := range s.state.Payments {
		out = append(out, copyPayment(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
