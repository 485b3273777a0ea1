package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/notify"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// OwnerHandler covers the owner surface: store-wide reports, the full
// daily schedule, and overriding booking lifecycle steps for any barber.
type OwnerHandler struct {
	Store    *store.EntityStore
	Notifier *notify.Notifier
}

func NewOwnerHandler(s *store.EntityStore, n *notify.Notifier) *OwnerHandler {
	if s == nil || n == nil {
		panic("nil dependency passed to NewOwnerHandler")
	}
	return &OwnerHandler{Store: s, Notifier: n}
}

// Overview returns the store-wide headline numbers.
func (h *OwnerHandler) Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.StoreOverview(c.Request().Context()))
}

// Schedule lists every non-canceled booking on a date (?date=YYYY-MM-DD,
// default today), sorted by appointment time.
func (h *OwnerHandler) Schedule(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	bookings := h.Store.BookingsOn(c.Request().Context(), date)
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, viewBooking(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "bookings": out})
}

// Revenue returns the per-barber revenue breakdown from paid payments.
func (h *OwnerHandler) Revenue(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Revenue(c.Request().Context()))
}

// Feedbacks lists every customer review, newest first.
func (h *OwnerHandler) Feedbacks(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"feedbacks": h.Store.Feedbacks(c.Request().Context()),
	})
}

// Users lists every account without password hashes.
func (h *OwnerHandler) Users(c echo.Context) error {
	users := h.Store.Users(c.Request().Context())
	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Start moves any scheduled booking to in-progress regardless of its
// assigned barber.
func (h *OwnerHandler) Start(c echo.Context) error {
	b, err := h.Store.StartBooking(c.Request().Context(), c.Param("id"), "")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewBooking(b))
}

// Complete finishes any booking and dispatches the completion event.
func (h *OwnerHandler) Complete(c echo.Context) error {
	ctx := c.Request().Context()
	b, ev, err := h.Store.CompleteBooking(ctx, c.Param("id"), "")
	if err != nil {
		return fail(c, err)
	}
	h.Notifier.Notify(ctx, ev)
	return c.JSON(http.StatusOK, viewBooking(b))
}
