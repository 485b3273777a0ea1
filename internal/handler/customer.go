package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/model"
	"github.com/rakafardani/barbershop-booking/internal/notify"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// CustomerHandler covers the customer surface: creating and managing
// bookings, paying, reviewing, and reading the notification inbox.
type CustomerHandler struct {
	Store    *store.EntityStore
	Notifier *notify.Notifier
	Inbox    *notify.Inbox
}

func NewCustomerHandler(s *store.EntityStore, n *notify.Notifier, in *notify.Inbox) *CustomerHandler {
	if s == nil || n == nil || in == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Store: s, Notifier: n, Inbox: in}
}

type createBookingReq struct {
	BaseService string   `json:"base_service"`
	Addons      []string `json:"addons"`
	BarberID    string   `json:"barber_id"`
	BookingDate string   `json:"booking_date"`
	BookingTime string   `json:"booking_time"`
}

// Create books an appointment.  The service is composed from a base
// service plus optional addons; the barber may be left empty for "any
// available".  The confirmation event fans out to all observers before
// the response is written.
func (h *CustomerHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.BaseService) == "" || req.BookingDate == "" || req.BookingTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_service/booking_date/booking_time required"})
	}

	ctx := c.Request().Context()
	b, ev, err := h.Store.CreateBooking(ctx, uid, strings.TrimSpace(req.BarberID), req.BaseService, req.Addons, req.BookingDate, req.BookingTime)
	if err != nil {
		return fail(c, err)
	}
	h.Notifier.Notify(ctx, ev)
	return c.JSON(http.StatusCreated, viewBooking(b))
}

// List returns the customer's bookings, newest first, each annotated with
// its payment status when a payment exists.
func (h *CustomerHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookings := h.Store.BookingsByCustomer(ctx, uid)
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		v := viewBooking(b)
		if p, ok := h.Store.PaymentForBooking(ctx, b.ID); ok {
			v.PaymentStatus = p.Status
		}
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Get returns one of the customer's bookings.
func (h *CustomerHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	b, err := h.ownBooking(ctx, c.Param("id"), uid)
	if err != nil {
		return fail(c, err)
	}
	v := viewBooking(b)
	if p, ok := h.Store.PaymentForBooking(ctx, b.ID); ok {
		v.PaymentStatus = p.Status
	}
	return c.JSON(http.StatusOK, v)
}

// Cancel cancels one of the customer's bookings.  Cancels inside the two
// hour window before the appointment are declined with 409.
func (h *CustomerHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	if _, err := h.ownBooking(ctx, c.Param("id"), uid); err != nil {
		return fail(c, err)
	}
	b, ev, err := h.Store.CancelBooking(ctx, c.Param("id"), time.Now())
	if err != nil {
		return fail(c, err)
	}
	h.Notifier.Notify(ctx, ev)
	return c.JSON(http.StatusOK, viewBooking(b))
}

type payReq struct {
	Method string `json:"method"`
}

// Pay settles one of the customer's bookings with the chosen method.
func (h *CustomerHandler) Pay(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidMethod(req.Method) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported payment method"})
	}

	ctx := c.Request().Context()
	if _, err := h.ownBooking(ctx, c.Param("id"), uid); err != nil {
		return fail(c, err)
	}
	p, err := h.Store.PayBooking(ctx, c.Param("id"), req.Method, time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

type feedbackReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Feedback records the customer's review of a completed booking.
func (h *CustomerHandler) Feedback(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, err := h.Store.CreateFeedback(c.Request().Context(), uid, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// Notifications returns the user's recent notifications, newest first.
func (h *CustomerHandler) Notifications(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": h.Inbox.List(uid)})
}

// ownBooking loads a booking and verifies the customer owns it.  Foreign
// bookings read as not found so ids cannot be probed.
func (h *CustomerHandler) ownBooking(ctx context.Context, id, customerID string) (model.Booking, error) {
	b, err := h.Store.Booking(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if b.CustomerID != customerID {
		return model.Booking{}, store.ErrNotFound
	}
	return b, nil
}
