package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
)

const healthPingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	pinger database.Pinger
}

func NewHealthHandler(pinger database.Pinger) HealthHandler {
	return &healthHandlerImpl{pinger: pinger}
}

// Check implements HealthHandler.
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		response.ServiceUnavailable(w, HealthResponse{
			Status:  "unavailable",
			Message: "Database unreachable",
		})
		return
	}

	response.OK(w, HealthResponse{
		Status:  "ok",
		Message: "HRMS Lite API is running",
	})
}
