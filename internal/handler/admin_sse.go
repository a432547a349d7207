package handler

import (
	"encoding/json"
	"net/http"

	"github.com/navelogic/rpgbot/internal/logger"
	"github.com/navelogic/rpgbot/internal/sse"
)

// AdminSSEBroadcastRequest injects an event into the roll feed. Only feed
// event types are accepted so overlays never see an unknown type.
type AdminSSEBroadcastRequest struct {
	Type    string          `json:"type" validate:"required,oneof=roll roll.critical"`
	Payload json.RawMessage `json:"payload"`
}

type AdminSSEHandler struct {
	sseHub *sse.Hub
}

func NewAdminSSEHandler(sseHub *sse.Hub) *AdminSSEHandler {
	return &AdminSSEHandler{sseHub: sseHub}
}

// HandleBroadcast pushes a manual event to every overlay, e.g. to test a
// stream layout before a session.
// @Summary Broadcast a roll feed event
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminSSEBroadcastRequest true "Event"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/sse/broadcast [post]
// @Security ApiKeyAuth
func (h *AdminSSEHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest[AdminSSEBroadcastRequest](w, r, "broadcast_event")
	if !ok {
		return
	}

	var payload any
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidPayloadJSON)
			return
		}
	}

	h.sseHub.Broadcast(req.Type, payload)
	logger.FromContext(r.Context()).Info("Manual feed event broadcast",
		"type", req.Type,
		"clients", h.sseHub.ClientCount())

	respondJSON(w, http.StatusOK, map[string]string{
		"message": MsgEventBroadcasted,
		"type":    req.Type,
	})
}
