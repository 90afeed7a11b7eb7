// Package middleware holds the Echo middleware for the booking API:
// actor identity resolution, the catalog response cache and the
// Redis token bucket.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// actorKey is the context key under which the resolved actor ID is
// stored for handlers.
const actorKey = "actor_id"

// RequireActor resolves the caller's identity from the X-Actor-ID
// header.  Identity is a caller-supplied numeric label, not a
// credential: the transport in front of this service (a chat bot,
// a gateway) is responsible for knowing who it speaks for.  Requests
// without a positive integer actor ID are rejected with 401.
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-Actor-ID")
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing or invalid X-Actor-ID"})
			}
			c.Set(actorKey, id)
			return next(c)
		}
	}
}

// ActorID returns the actor identity stored by RequireActor, or false
// when the middleware did not run for this route.
func ActorID(c echo.Context) (int64, bool) {
	id, ok := c.Get(actorKey).(int64)
	return id, ok
}

// actorLabel renders the actor ID for rate-limit keys; anonymous
// routes share one bucket per IP.
func actorLabel(c echo.Context) string {
	if id, ok := ActorID(c); ok {
		return strconv.FormatInt(id, 10)
	}
	return "anon"
}
