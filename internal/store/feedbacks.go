package store

import (
	"context"
	"sort"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

// CreateFeedback records a customer's review of a completed booking.  The
// booking must belong to the customer and be completed, and only one
// feedback may ever exist per booking; that invariant lives here in the
// store rather than in the callers.  The barber attribution is taken from
// the booking itself.
func (s *EntityStore) CreateFeedback(_ context.Context, customerID, bookingID string, rating int, comment string) (model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.Bookings[bookingID]
	if !ok || b.CustomerID != customerID {
		return model.Feedback{}, ErrNotFound
	}
	if b.Status != model.StatusCompleted {
		return model.Feedback{}, ErrNotCompleted
	}
	for _, f := range s.state.Feedbacks {
		if f.BookingID == bookingID {
			return model.Feedback{}, ErrFeedbackExists
		}
	}
	f := model.Feedback{
		BookingID:  bookingID,
		CustomerID: customerID,
		BarberID:   b.BarberID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  nowUTC(),
	}
	if err := f.Validate(); err != nil {
		return model.Feedback{}, err
	}
	f.ID = s.nextIDLocked("FB")
	s.state.Feedbacks[f.ID] = f
	if err := s.persistLocked(); err != nil {
		return model.Feedback{}, err
	}
	return f, nil
}

// FeedbacksByBarber lists reviews attributed to one barber, newest first.
func (s *EntityStore) FeedbacksByBarber(_ context.Context, barberID string) []model.Feedback {
	return s.filterFeedbacks(func(f model.Feedback) bool { return f.BarberID == barberID })
}

// Feedbacks lists every review, newest first.
func (s *EntityStore) Feedbacks(_ context.Context) []model.Feedback {
	return s.filterFeedbacks(func(model.Feedback) bool { return true })
}

func (s *EntityStore) filterFeedbacks(keep func(model.Feedback) bool) []model.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Feedback
	for _, f := range s.state.Feedbacks {
		if keep(f) {
			out = append(out, f)
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
