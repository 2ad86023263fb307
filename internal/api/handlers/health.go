package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// livenessBanner is the plain-text root response.
const livenessBanner = "grailfeed is running"

// HealthHandler provides the root liveness line and health endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root returns a plain-text liveness string.
func (*HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, livenessBanner)
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 once the process can serve. The service holds no
// persistent dependencies; upstream reachability is probed lazily per
// request, so readiness mirrors liveness.
func (*HealthHandler) Readyz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
