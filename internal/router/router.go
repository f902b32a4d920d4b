// Package router wires handlers and middleware onto the Echo instance.
// Each Register function owns one surface of the API so main stays a
// plain assembly of constructor calls.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/handler"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Check)
}
