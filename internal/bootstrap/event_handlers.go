package bootstrap

import (
	"log/slog"

	"github.com/navelogic/rpgbot/internal/event"
	"github.com/navelogic/rpgbot/internal/sse"
	"github.com/navelogic/rpgbot/internal/streamerbot"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	SSEHub             *sse.Hub
	Streamerbot        streamerbot.ActionSender
	StreamerbotActions streamerbot.Actions
}

// RegisterEventHandlers sets up all event subscribers:
// - SSE subscriber (roll feed for overlays and the Discord critical notifier)
// - Streamer.bot subscriber (stream alerts for criticals)
//
// The Streamer.bot subscriber is returned, or nil when it is not configured,
// so shutdown can stop its delivery worker.
func RegisterEventHandlers(deps EventHandlerDependencies) *streamerbot.Subscriber {
	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberReady)
	}

	if deps.Streamerbot == nil {
		return nil
	}
	alerts := streamerbot.NewSubscriber(deps.Streamerbot, deps.EventBus, deps.StreamerbotActions)
	alerts.Subscribe()
	slog.Info(LogMsgStreamerbotReady, "actions", deps.StreamerbotActions)
	return alerts
}
