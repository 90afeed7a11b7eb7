package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/annagav/cinema-booking/internal/middleware"
	"github.com/annagav/cinema-booking/internal/navigation"
)

// NavigateHandler exposes the drill-down machine to chat-style
// frontends: the client holds the token, sends one typed intent per
// interaction and renders whatever menu comes back.
type NavigateHandler struct {
	Machine *navigation.Machine
}

// NewNavigateHandler constructs a NavigateHandler over the machine.
func NewNavigateHandler(m *navigation.Machine) *NavigateHandler {
	if m == nil {
		panic("nil machine passed to NewNavigateHandler")
	}
	return &NavigateHandler{Machine: m}
}

// Navigate handles POST /v1/navigate.  The body carries the current
// token and one intent; the response is the machine's result: new
// token, menu, and optionally a signal or a booking outcome.  Claims
// and cancels flow through the same endpoint so a frontend needs no
// other route.
func (h *NavigateHandler) Navigate(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Token  navigation.Token  `json:"token"`
		Intent navigation.Intent `json:"intent"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Intent.Kind == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "intent kind is required"})
	}
	res, err := h.Machine.Apply(c.Request().Context(), body.Token, actorID, body.Intent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}
