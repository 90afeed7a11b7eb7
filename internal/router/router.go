// Package router wires handlers and middleware onto the Echo
// instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/annagav/cinema-booking/internal/config"
	"github.com/annagav/cinema-booking/internal/handler"
	"github.com/annagav/cinema-booking/internal/middleware"
)

// Register mounts every route of the booking API.
//
// The catalog routes carry the Redis response cache: the schedule is
// immutable for the process lifetime.  Seat views and mutations never
// pass through the cache, since a view is a point-in-time projection.
// All /v1 routes share the rate limiter, and everything except the
// catalog requires a resolved actor identity.
func Register(e *echo.Echo, browse *handler.BrowseHandler, booking *handler.BookingHandler, navigate *handler.NavigateHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewCatalogCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1", limiter)

	// Catalog browse: no identity needed, cacheable.
	cat := v1.Group("", cache)
	cat.GET("/dates", browse.ListDates)
	cat.GET("/dates/:date/sessions", browse.ListSessions)
	cat.GET("/dates/:date/sessions/:time/rows", browse.ListRows)

	// Occupancy and mutations: identity required, never cached.
	act := v1.Group("", middleware.RequireActor())
	act.GET("/dates/:date/sessions/:time/rows/:row/seats", browse.RowSeats)
	act.POST("/bookings", booking.Book)
	act.DELETE("/bookings", booking.Cancel)
	act.GET("/my-bookings", booking.MyBookings)
	act.POST("/navigate", navigate.Navigate)
}
