package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/notify"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// BarberHandler covers the barber surface: the daily schedule, running
// appointments through their lifecycle, toggling availability, and
// reading own stats and reviews.
type BarberHandler struct {
	Store    *store.EntityStore
	Notifier *notify.Notifier
}

func NewBarberHandler(s *store.EntityStore, n *notify.Notifier) *BarberHandler {
	if s == nil || n == nil {
		panic("nil dependency passed to NewBarberHandler")
	}
	return &BarberHandler{Store: s, Notifier: n}
}

// Schedule lists the barber's bookings for a date (?date=YYYY-MM-DD,
// default today), sorted by appointment time.  Unassigned bookings are
// included since any available barber may pick them up.
func (h *BarberHandler) Schedule(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	out := []bookingView{}
	for _, b := range h.Store.BookingsOn(c.Request().Context(), date) {
		if b.BarberID == uid || b.BarberID == "" {
			out = append(out, viewBooking(b))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "bookings": out})
}

// Start moves a scheduled booking to in-progress.  Starting an unassigned
// booking claims it for this barber.
func (h *BarberHandler) Start(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Store.StartBooking(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewBooking(b))
}

// Complete finishes a booking and dispatches the completion event.
func (h *BarberHandler) Complete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	b, ev, err := h.Store.CompleteBooking(ctx, c.Param("id"), uid)
	if err != nil {
		return fail(c, err)
	}
	h.Notifier.Notify(ctx, ev)
	return c.JSON(http.StatusOK, viewBooking(b))
}

type availabilityReq struct {
	Available *bool `json:"available"`
}

// Availability sets whether the barber accepts new bookings.
func (h *BarberHandler) Availability(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil || req.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available (boolean) required"})
	}
	u, err := h.Store.SetBarberAvailability(c.Request().Context(), uid, *req.Available)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Stats returns the barber's own performance summary.
func (h *BarberHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.Store.StatsForBarber(c.Request().Context(), uid))
}

// Reviews lists the reviews left for this barber, newest first.
func (h *BarberHandler) Reviews(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reviews": h.Store.FeedbacksByBarber(c.Request().Context(), uid),
	})
}
