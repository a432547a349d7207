package streamerbot

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/event"
)

// ActionSender triggers Streamer.bot actions. *Client implements it.
type ActionSender interface {
	DoAction(actionName string, args map[string]string) error
}

// Actions names the Streamer.bot actions bound to roll outcomes. An empty
// name disables that trigger.
type Actions struct {
	CriticalSuccess string
	CriticalFailure string
	Roll            string
}

// DefaultActions triggers the critical actions only
func DefaultActions() Actions {
	return Actions{
		CriticalSuccess: ActionCriticalSuccess,
		CriticalFailure: ActionCriticalFailure,
	}
}

// DeliveryQueueSize bounds the actions waiting for the delivery worker.
// Rolls arriving while it is full are dropped.
const DeliveryQueueSize = 32

type delivery struct {
	action string
	args   map[string]string
}

// Subscriber bridges roll events to Streamer.bot DoAction commands.
//
// The bus runs handlers inline with Publish, which the roll endpoint waits
// on. Actions are therefore queued and sent by a single worker goroutine so
// a stalled Streamer.bot write never delays a roll reply.
type Subscriber struct {
	sender  ActionSender
	bus     event.Bus
	actions Actions

	queue    chan delivery
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewSubscriber creates a new Streamer.bot event subscriber
func NewSubscriber(sender ActionSender, bus event.Bus, actions Actions) *Subscriber {
	return &Subscriber{
		sender:  sender,
		bus:     bus,
		actions: actions,
		queue:   make(chan delivery, DeliveryQueueSize),
		done:    make(chan struct{}),
	}
}

// Subscribe registers handlers for relevant event types and starts the
// delivery worker. Call Stop to end it.
func (s *Subscriber) Subscribe() {
	s.wg.Add(1)
	go s.deliver()

	s.bus.Subscribe(event.RollEvaluated, s.handleRollEvaluated)

	slog.Info(LogMsgSubscribed, "types", []string{string(event.RollEvaluated)})
}

// Stop sends whatever is already queued and waits for the worker to exit.
// Rolls published afterwards are ignored.
func (s *Subscriber) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.wg.Wait()
}

func (s *Subscriber) deliver() {
	defer s.wg.Done()
	for {
		select {
		case d := <-s.queue:
			s.send(d)
		case <-s.done:
			for {
				select {
				case d := <-s.queue:
					s.send(d)
				default:
					return
				}
			}
		}
	}
}

func (s *Subscriber) send(d delivery) {
	if err := s.sender.DoAction(d.action, d.args); err != nil {
		// Streamer.bot being offline is expected when not streaming
		slog.Debug("Failed to send roll to Streamer.bot", "action", d.action, "error", err)
	}
}

func (s *Subscriber) enqueue(d delivery) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.queue <- d:
	default:
		slog.Warn(LogMsgQueueFull, "action", d.action, "queue_size", DeliveryQueueSize)
	}
}

// handleRollEvaluated fires the critical action for natural 20s and 1s and
// the roll action, when configured, for everything else.
func (s *Subscriber) handleRollEvaluated(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RollEvaluatedPayloadV1](evt.Payload)
	if err != nil || payload.Result == nil {
		slog.Warn("Invalid roll evaluated event payload", "error", err)
		return nil
	}

	action := s.actionFor(payload.Critical)
	if action == "" {
		return nil
	}

	args := map[string]string{
		ArgUsername:   payload.Username,
		ArgPlatform:   payload.Platform,
		ArgExpression: payload.Command,
		ArgTotal:      strconv.Itoa(payload.Result.Total),
		ArgVisual:     payload.Result.Visual,
		ArgMessage:    payload.Result.CriticalMessage,
	}

	slog.Debug(LogMsgEventReceived, "event_type", evt.Type, "action", action)

	s.enqueue(delivery{action: action, args: args})
	return nil
}

func (s *Subscriber) actionFor(critical string) string {
	switch critical {
	case domain.CriticalSuccess:
		return s.actions.CriticalSuccess
	case domain.CriticalFailure:
		return s.actions.CriticalFailure
	default:
		return s.actions.Roll
	}
}
