package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"auth-api/app/rest/response"
	"auth-api/app/utils/timefmt"
)

// HealthHandler serves the root health endpoint.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health handler anchored at process start.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root reports that the server is online, with its uptime and the current
// timestamp. Uptime is monotonic, so two successive calls never report a
// decreasing value.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	uptime := time.Since(h.startedAt)
	return response.Success(c, http.StatusOK, "Server is online!", map[string]interface{}{
		"uptime":    fmt.Sprintf("%d seconds", int64(uptime.Seconds())),
		"timestamp": timefmt.Now(),
	})
}
