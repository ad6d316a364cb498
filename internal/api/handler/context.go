package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/api/middleware"
)

// actorEmail returns the email bound by the Authenticate guard, or "" on
// routes that carry no auth gate.
func actorEmail(c echo.Context) string {
	if id, ok := middleware.IdentityFrom(c); ok {
		return id.Email
	}
	return ""
}
