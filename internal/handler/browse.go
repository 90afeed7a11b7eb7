// Package handler implements the HTTP surface of the booking service.
// Handlers translate requests into catalog, engine and navigation
// calls and recoverable outcomes into distinguishable JSON responses;
// they hold no state of their own.
package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/engine"
	"github.com/annagav/cinema-booking/internal/middleware"
)

// pathParam returns a path parameter with percent-escapes resolved;
// date labels contain spaces and arrive escaped.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// BrowseHandler serves the read-only drill-down: dates, sessions,
// rows and the per-row seat view.
type BrowseHandler struct {
	Catalog *catalog.Catalog
	Engine  *engine.Engine
}

// NewBrowseHandler constructs a BrowseHandler.  Both dependencies
// must be non-nil.
func NewBrowseHandler(cat *catalog.Catalog, eng *engine.Engine) *BrowseHandler {
	if cat == nil || eng == nil {
		panic("nil catalog or engine passed to NewBrowseHandler")
	}
	return &BrowseHandler{Catalog: cat, Engine: eng}
}

// ListDates handles GET /v1/dates.  The schedule is immutable for the
// process lifetime, so this response is safe to cache.
func (h *BrowseHandler) ListDates(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"dates": h.Catalog.Dates()})
}

// ListSessions handles GET /v1/dates/:date/sessions.  An unknown date
// yields an empty list, not an error: stale links are a routine
// condition, not a fault.
func (h *BrowseHandler) ListSessions(c echo.Context) error {
	date := pathParam(c, "date")
	return c.JSON(http.StatusOK, echo.Map{
		"date":     date,
		"sessions": h.Catalog.Sessions(date),
	})
}

// ListRows handles GET /v1/dates/:date/sessions/:time/rows.  It
// returns the venue's row numbers when the showing exists and 404
// otherwise.
func (h *BrowseHandler) ListRows(c echo.Context) error {
	date, session := pathParam(c, "date"), pathParam(c, "time")
	if !h.Catalog.HasSession(date, session) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown showing"})
	}
	layout := h.Engine.Layout()
	rows := make([]int, 0, layout.Rows)
	for row := 1; row <= layout.Rows; row++ {
		rows = append(rows, row)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date": date,
		"time": session,
		"rows": rows,
	})
}

// RowSeats handles GET /v1/dates/:date/sessions/:time/rows/:row/seats.
// The seat view is recomputed from the store on every call and must
// never be served from a cache: by the time the client acts on it the
// view may already be stale, and the claim itself re-validates.
func (h *BrowseHandler) RowSeats(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date, session := pathParam(c, "date"), pathParam(c, "time")
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row"})
	}
	view, outcome, err := h.Engine.RowView(c.Request().Context(), date, session, row, actorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if outcome == engine.OutcomeInvalidSelection {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown showing or row"})
	}
	return c.JSON(http.StatusOK, view)
}
