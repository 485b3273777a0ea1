package store

import (
	"context"
	"sort"
	"time"

	"github.com/rakafardani/barbershop-booking/internal/catalog"
	"github.com/rakafardani/barbershop-booking/internal/model"
)

// CreateBooking stores a new scheduled booking for the customer and returns
// it together with the confirmation event to dispatch.  The service is
// composed through the catalog factory, so an unknown base name surfaces
// catalog.ErrUnknownService before anything is written.  barberID may be
// empty ("any available"); when set it must name an available barber.
func (s *EntityStore) CreateBooking(_ context.Context, customerID, barberID, base string, addons []string, date, at string) (model.Booking, model.Event, error) {
	svc, err := catalog.New(base, addons)
	if err != nil {
		return model.Booking{}, model.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Users[customerID]; !ok {
		return model.Booking{}, model.Event{}, ErrNotFound
	}
	if barberID != "" {
		barber, ok := s.state.Users[barberID]
		if !ok || barber.Role != model.RoleBarber {
			return model.Booking{}, model.Event{}, ErrNotFound
		}
		if !barber.IsAvailable {
			return model.Booking{}, model.Event{}, ErrBarberUnavailable
		}
	}
	b := model.Booking{
		ID:          s.nextIDLocked("BK"),
		CustomerID:  customerID,
		BarberID:    barberID,
		Service:     svc,
		BookingDate: date,
		BookingTime: at,
		Status:      model.StatusScheduled,
		CreatedAt:   nowUTC(),
	}
	if _, err := b.StartsAt(); err != nil {
		return model.Booking{}, model.Event{}, err
	}
	s.state.Bookings[b.ID] = b
	if err := s.persistLocked(); err != nil {
		return model.Booking{}, model.Event{}, err
	}
	return copyBooking(b), b.Confirmed(), nil
}

// Booking returns the booking with the given id.
func (s *EntityStore) Booking(_ context.Context, id string) (model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.state.Bookings[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return copyBooking(b), nil
}

// BookingsByCustomer lists a customer's bookings, newest first.
func (s *EntityStore) BookingsByCustomer(_ context.Context, customerID string) []model.Booking {
	return s.filterBookings(func(b model.Booking) bool { return b.CustomerID == customerID })
}

// BookingsByBarber lists a barber's bookings, newest first.
func (s *EntityStore) BookingsByBarber(_ context.Context, barberID string) []model.Booking {
	return s.filterBookings(func(b model.Booking) bool { return b.BarberID == barberID })
}

// BookingsOn lists non-canceled bookings on the given ISO date sorted by
// appointment time, the shape both daily schedule views want.
func (s *EntityStore) BookingsOn(_ context.Context, date string) []model.Booking {
	out := s.filterBookings(func(b model.Booking) bool {
		return b.BookingDate == date && b.Status != model.StatusCanceled
	})
	sort.Slice(out, func(i, j int) bool { return out[i].BookingTime < out[j].BookingTime })
	return out
}

func (s *EntityStore) filterBookings(keep func(model.Booking) bool) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Booking
	for _, b := range s.state.Bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CancelBooking applies the cancel transition and persists the result.
// A declined cancel (terminal state, inside the 2 hour window) changes
// nothing on disk or in memory.
func (s *EntityStore) CancelBooking(_ context.Context, id string, now time.Time) (model.Booking, model.Event, error) {
	return s.transition(id, func(b *model.Booking) (model.Event, error) {
		return b.Cancel(now)
	})
}

// StartBooking moves a scheduled booking to in-progress.  Starting emits
// no event.  actorBarberID scopes the action when set: a barber may only
// start their own bookings, and starting an unassigned ("any available")
// booking claims it for that barber.  The owner passes an empty actor
// and may start anything.
func (s *EntityStore) StartBooking(_ context.Context, id, actorBarberID string) (model.Booking, error) {
	b, _, err := s.transition(id, func(b *model.Booking) (model.Event, error) {
		if err := claimFor(b, actorBarberID); err != nil {
			return model.Event{}, err
		}
		return model.Event{}, b.Start()
	})
	return b, err
}

// CompleteBooking applies the complete transition and persists the
// result.  Actor scoping matches StartBooking.
func (s *EntityStore) CompleteBooking(_ context.Context, id, actorBarberID string) (model.Booking, model.Event, error) {
	return s.transition(id, func(b *model.Booking) (model.Event, error) {
		if err := claimFor(b, actorBarberID); err != nil {
			return model.Event{}, err
		}
		return b.Complete()
	})
}

// claimFor enforces barber ownership of a booking and assigns unowned
// bookings to the acting barber.  An empty actor skips both.
func claimFor(b *model.Booking, actorBarberID string) error {
	if actorBarberID == "" {
		return nil
	}
	if b.BarberID == "" {
		b.BarberID = actorBarberID
		return nil
	}
	if b.BarberID != actorBarberID {
		return ErrForbidden
	}
	return nil
}

// transition runs one lifecycle step under the write lock and persists the
// new state.  If the step declines, the stored booking is left untouched.
func (s *EntityStore) transition(id string, step func(*model.Booking) (model.Event, error)) (model.Booking, model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.Bookings[id]
	if !ok {
		return model.Booking{}, model.Event{}, ErrNotFound
	}
	ev, err := step(&b)
	if err != nil {
		return model.Booking{}, model.Event{}, err
	}
	s.state.Bookings[id] = b
	if err := s.persistLocked(); err != nil {
		return model.Booking{}, model.Event{}, err
	}
	return copyBooking(b), ev, nil
}
