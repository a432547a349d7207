package handler

import (
	"net/http"

	"github.com/navelogic/rpgbot/internal/roll"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	rollService roll.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(rollService roll.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		rollService: rollService,
	}
}

// HandleGetCacheStats returns current expression cache statistics
// GET /api/v1/admin/cache/stats
// @Summary Get expression cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} roll.CacheStats
// @Router /api/v1/admin/cache/stats [get]
// @Security ApiKeyAuth
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.rollService.CacheStats()
	respondJSON(w, http.StatusOK, stats)
}

// HandleClearCache drops every cached expression
// DELETE /api/v1/admin/cache
// @Summary Clear expression cache
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/cache [delete]
// @Security ApiKeyAuth
func (h *AdminCacheHandler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	h.rollService.ClearCache(r.Context())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCacheCleared})
}
