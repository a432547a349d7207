package sse

import (
	"context"
	"log/slog"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RollEvaluated, s.handleRollEvaluated)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{string(event.RollEvaluated)})
}

// handleRollEvaluated broadcasts a roll, and a separate critical event when
// the roll carried an annotation.
func (s *Subscriber) handleRollEvaluated(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RollEvaluatedPayloadV1](evt.Payload)
	if err != nil || payload.Result == nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	ssePayload := RollPayload{
		Platform:        payload.Platform,
		Username:        payload.Username,
		Expression:      payload.Command,
		Total:           payload.Result.Total,
		Visual:          payload.Result.Visual,
		CriticalMessage: payload.Result.CriticalMessage,
		Critical:        payload.Critical,
	}

	s.hub.Broadcast(EventTypeRoll, ssePayload)
	if ssePayload.Critical != domain.CriticalNone {
		s.hub.Broadcast(EventTypeCritical, ssePayload)
	}

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeRoll,
		"username", ssePayload.Username,
		"total", ssePayload.Total,
		"critical", ssePayload.Critical)

	return nil
}
