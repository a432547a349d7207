package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/navelogic/rpgbot/internal/logger"
)

const (
	healthStatusOK          = "ok"
	healthStatusUnavailable = "unavailable"

	readinessTimeout = 2 * time.Second
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker is anything that can prove it is able to serve
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HandleHealthz answers as long as the process is up
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	ok := HealthResponse{Status: healthStatusOK}
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, ok)
	}
}

// HandleReadyz rolls a test die through checker; a failure or a slow dice
// source reports 503
// @Summary Readiness check
// @Description Returns OK if the dice source can produce a roll
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		err := checker.CheckHealth(ctx)
		if err == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
			return
		}

		logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  healthStatusUnavailable,
			Message: "dice source check failed",
		})
	}
}
