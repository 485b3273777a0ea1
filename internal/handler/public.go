package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rakafardani/barbershop-booking/internal/catalog"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// PublicHandler serves the unauthenticated read-only endpoints: the
// service catalog and the barber listing.
type PublicHandler struct {
	Store *store.EntityStore
}

func NewPublicHandler(s *store.EntityStore) *PublicHandler {
	if s == nil {
		panic("nil store passed to NewPublicHandler")
	}
	return &PublicHandler{Store: s}
}

// Services lists every base service and addon with prices and durations.
func (h *PublicHandler) Services(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"base_services": catalog.BaseServices(),
		"addons":        catalog.Addons(),
	})
}

// Barbers lists barbers.  ?available=true narrows to available ones.
func (h *PublicHandler) Barbers(c echo.Context) error {
	availableOnly := false
	if q := c.QueryParam("available"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "available must be a boolean"})
		}
		availableOnly = v
	}
	barbers := h.Store.Barbers(c.Request().Context(), availableOnly)
	out := make([]any, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, b.Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"barbers": out})
}
