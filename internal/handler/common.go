package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/catalog"
	"github.com/rakafardani/barbershop-booking/internal/model"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("user_id missing in context")
}

// fail translates a domain error into the matching HTTP response.  Every
// declined action comes back as a short text message; internal faults
// never leak details beyond a generic message.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, catalog.ErrUnknownService),
		errors.Is(err, model.ErrBadRating),
		errors.Is(err, model.ErrBadAppointment):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, store.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, store.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrFeedbackExists),
		errors.Is(err, store.ErrPaymentExists),
		errors.Is(err, store.ErrBookingCanceled),
		errors.Is(err, store.ErrNotCompleted),
		errors.Is(err, store.ErrBarberUnavailable),
		errors.Is(err, model.ErrTerminalState),
		errors.Is(err, model.ErrTooLate),
		errors.Is(err, model.ErrNotStartable):
		status, msg = http.StatusConflict, err.Error()
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// bookingView is the booking DTO returned by every booking endpoint.  The
// composed service is rendered out to description/price/duration next to
// its structured form so clients need no catalog knowledge to display it.
type bookingView struct {
	ID                 string          `json:"booking_id"`
	CustomerID         string          `json:"customer_id"`
	BarberID           string          `json:"barber_id,omitempty"`
	Service            catalog.Service `json:"service"`
	ServiceDescription string          `json:"service_description"`
	ServicePrice       int64           `json:"service_price"`
	ServiceDuration    int             `json:"service_duration"`
	BookingDate        string          `json:"booking_date"`
	BookingTime        string          `json:"booking_time"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"payment_status,omitempty"`
}

func viewBooking(b model.Booking) bookingView {
	return bookingView{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		BarberID:           b.BarberID,
		Service:            b.Service,
		ServiceDescription: b.Service.Description(),
		ServicePrice:       b.Service.Price(),
		ServiceDuration:    b.Service.Duration(),
		BookingDate:        b.BookingDate,
		BookingTime:        b.BookingTime,
		Status:             b.Status,
	}
}
