package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/annagav/cinema-booking/internal/engine"
	"github.com/annagav/cinema-booking/internal/middleware"
	"github.com/annagav/cinema-booking/internal/queue"
)

// Notifier publishes seat events after confirmed mutations.  The
// broker-backed implementation lives in the queue_publisher package;
// tests run without one.
type Notifier interface {
	PublishSeatEvent(ctx context.Context, event queue.SeatEvent) error
}

// BookingHandler serves claim, release and the caller's booking list.
type BookingHandler struct {
	Engine   *engine.Engine
	Notifier Notifier // optional; nil disables notifications
}

// NewBookingHandler constructs a BookingHandler.  The engine must be
// non-nil; the notifier may be nil.
func NewBookingHandler(eng *engine.Engine, notifier Notifier) *BookingHandler {
	if eng == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: eng, Notifier: notifier}
}

// seatRequest is the JSON body shared by book and cancel.
type seatRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Row  int    `json:"row"`
	Seat int    `json:"seat"`
}

// outcomeStatus maps a recoverable engine outcome to its HTTP status
// so every condition stays distinguishable for the client.
func outcomeStatus(out engine.Outcome, confirmed int) int {
	switch out {
	case engine.OutcomeConfirmed:
		return confirmed
	case engine.OutcomeSeatTaken:
		return http.StatusConflict
	case engine.OutcomeNothingToCancel:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Book handles POST /v1/bookings.  It claims one seat for the calling
// actor and returns the outcome together with a refreshed row view.
// A lost race is a 409 with outcome SEAT_TAKEN, not a fault.
func (h *BookingHandler) Book(c echo.Context) error {
	return h.mutate(c, true)
}

// Cancel handles DELETE /v1/bookings.  Only the owner's own booking
// can be released; anything else reports NOTHING_TO_CANCEL.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.mutate(c, false)
}

func (h *BookingHandler) mutate(c echo.Context, book bool) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body seatRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	var outcome engine.Outcome
	var err error
	if book {
		outcome, err = h.Engine.BookSeat(ctx, body.Date, body.Time, body.Row, body.Seat, actorID)
	} else {
		outcome, err = h.Engine.CancelSeat(ctx, body.Date, body.Time, body.Row, body.Seat, actorID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if outcome == engine.OutcomeConfirmed {
		h.notify(ctx, body, actorID, book)
	}

	resp := echo.Map{"outcome": outcome}
	if outcome != engine.OutcomeInvalidSelection {
		// Refresh the row so the client renders current occupancy.
		if view, _, verr := h.Engine.RowView(ctx, body.Date, body.Time, body.Row, actorID); verr == nil {
			resp["view"] = view
		}
	}
	confirmed := http.StatusCreated
	if !book {
		confirmed = http.StatusOK
	}
	return c.JSON(outcomeStatus(outcome, confirmed), resp)
}

// notify publishes the seat event.  Failures are logged and dropped:
// the claim has already committed and the response must not depend on
// the broker.
func (h *BookingHandler) notify(ctx context.Context, body seatRequest, actorID int64, book bool) {
	if h.Notifier == nil {
		return
	}
	action := queue.ActionBooked
	if !book {
		action = queue.ActionCancelled
	}
	event := queue.SeatEvent{
		Action:   action,
		UserID:   actorID,
		ShowDate: body.Date,
		ShowTime: body.Time,
		Row:      body.Row,
		Seat:     body.Seat,
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Notifier.PublishSeatEvent(ctx, event); err != nil {
		slog.Warn("seat event publish failed", "action", action, "user_id", actorID, "err", err)
	}
}

// MyBookings handles GET /v1/my-bookings.  It lists every live
// booking held by the calling actor.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Engine.ListBookings(c.Request().Context(), actorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]echo.Map, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, echo.Map{
			"date": b.ShowDate,
			"time": b.ShowTime,
			"row":  b.Row,
			"seat": b.Seat,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
