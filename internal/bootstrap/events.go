package bootstrap

import (
	"context"
	"log/slog"

	"github.com/navelogic/rpgbot/internal/config"
	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/event"
	"github.com/navelogic/rpgbot/internal/sse"
	"github.com/navelogic/rpgbot/internal/streamerbot"
)

// EventSystem is the in-process bus plus the outlets its roll events reach:
// the SSE hub and, when configured, Streamer.bot.
type EventSystem struct {
	Bus               event.Bus
	Hub               *sse.Hub
	Streamerbot       *streamerbot.Client
	StreamerbotAlerts *streamerbot.Subscriber
}

// InitializeEventSystem creates the memory bus, starts the SSE hub and the
// optional Streamer.bot client, and registers every subscriber. The hub is
// stopped by server.Stop, the Streamer.bot subscriber and client by
// GracefulShutdown.
func InitializeEventSystem(ctx context.Context, cfg *config.Config) *EventSystem {
	bus := event.NewMemoryBus()

	hub := sse.NewHub()
	hub.Start()

	deps := EventHandlerDependencies{
		EventBus: bus,
		SSEHub:   hub,
	}

	var sb *streamerbot.Client
	if cfg.StreamerbotURL != "" {
		sb = streamerbot.NewClient(cfg.StreamerbotURL, cfg.StreamerbotPassword)
		sb.Start(ctx)

		deps.Streamerbot = sb
		deps.StreamerbotActions = streamerbot.Actions{
			CriticalSuccess: cfg.StreamerbotCriticalSuccess,
			CriticalFailure: cfg.StreamerbotCriticalFailure,
			Roll:            cfg.StreamerbotRollAction,
		}
	}

	alerts := RegisterEventHandlers(deps)

	slog.Info(LogMsgEventSystemInitialized, "streamerbot", sb != nil)
	return &EventSystem{Bus: bus, Hub: hub, Streamerbot: sb, StreamerbotAlerts: alerts}
}

// NewDiceSource picks the random source for the evaluator. crypto/rand is
// opt-in through DICE_SECURE_RANDOM.
func NewDiceSource(cfg *config.Config) dice.Source {
	if cfg.SecureRandom {
		slog.Info(LogMsgDiceSourceSelected, "source", DiceSourceSecure)
		return dice.SecureSource()
	}
	slog.Info(LogMsgDiceSourceSelected, "source", DiceSourceDefault)
	return dice.DefaultSource()
}
