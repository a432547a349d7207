package streamerbot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/event"
	"github.com/navelogic/rpgbot/internal/testing/leaktest"
)

type MockActionSender struct {
	mock.Mock
}

func (m *MockActionSender) DoAction(actionName string, args map[string]string) error {
	return m.Called(actionName, args).Error(0)
}

func publishRoll(t *testing.T, bus event.Bus, result *domain.RollResult) {
	t.Helper()
	req := domain.RollRequest{Platform: domain.PlatformTelegram, Username: "alice", Command: "/r 1d20+2"}
	require.NoError(t, bus.Publish(context.Background(), event.NewRollEvaluatedEvent(req, result)))
}

func TestSubscriber_CriticalActions(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.RollResult
		action string
	}{
		{
			name:   "natural 20",
			result: &domain.RollResult{Total: 22, Visual: "(20) + 2", CriticalMessage: domain.CriticalSuccessMessage},
			action: ActionCriticalSuccess,
		},
		{
			name:   "natural 1",
			result: &domain.RollResult{Total: 3, Visual: "(1) + 2", CriticalMessage: domain.CriticalFailureMessage},
			action: ActionCriticalFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(MockActionSender)
			sender.On("DoAction", tt.action, mock.MatchedBy(func(args map[string]string) bool {
				return args[ArgUsername] == "alice" &&
					args[ArgPlatform] == domain.PlatformTelegram &&
					args[ArgExpression] == "/r 1d20+2" &&
					args[ArgVisual] == tt.result.Visual &&
					args[ArgMessage] == tt.result.CriticalMessage
			})).Return(nil).Once()

			bus := event.NewMemoryBus()
			sub := NewSubscriber(sender, bus, DefaultActions())
			sub.Subscribe()

			publishRoll(t, bus, tt.result)
			sub.Stop()

			sender.AssertExpectations(t)
		})
	}
}

func TestSubscriber_PlainRolls(t *testing.T) {
	plain := &domain.RollResult{Total: 12, Visual: "(10) + 2"}

	t.Run("ignored by default", func(t *testing.T) {
		sender := new(MockActionSender)
		bus := event.NewMemoryBus()
		sub := NewSubscriber(sender, bus, DefaultActions())
		sub.Subscribe()

		publishRoll(t, bus, plain)
		sub.Stop()

		sender.AssertNotCalled(t, "DoAction", mock.Anything, mock.Anything)
	})

	t.Run("roll action when configured", func(t *testing.T) {
		sender := new(MockActionSender)
		sender.On("DoAction", ActionRoll, mock.MatchedBy(func(args map[string]string) bool {
			return args[ArgTotal] == "12"
		})).Return(nil).Once()

		actions := DefaultActions()
		actions.Roll = ActionRoll
		bus := event.NewMemoryBus()
		sub := NewSubscriber(sender, bus, actions)
		sub.Subscribe()

		publishRoll(t, bus, plain)
		sub.Stop()

		sender.AssertExpectations(t)
	})
}

func TestSubscriber_SenderErrorDoesNotFailPublish(t *testing.T) {
	sender := new(MockActionSender)
	sender.On("DoAction", mock.Anything, mock.Anything).Return(errors.New(ErrMsgNotConnected))

	bus := event.NewMemoryBus()
	sub := NewSubscriber(sender, bus, DefaultActions())
	sub.Subscribe()

	publishRoll(t, bus, &domain.RollResult{Total: 20, Visual: "(20)", CriticalMessage: domain.CriticalSuccessMessage})
	sub.Stop()

	sender.AssertNumberOfCalls(t, "DoAction", 1)
}

func TestSubscriber_InvalidPayload(t *testing.T) {
	sender := new(MockActionSender)
	bus := event.NewMemoryBus()
	sub := NewSubscriber(sender, bus, DefaultActions())
	sub.Subscribe()

	err := bus.Publish(context.Background(), event.Event{Type: event.RollEvaluated, Payload: "garbage"})
	assert.NoError(t, err)
	sub.Stop()
	sender.AssertNotCalled(t, "DoAction", mock.Anything, mock.Anything)
}

// stalledSender blocks every DoAction until release is closed, like a
// Streamer.bot socket stuck in a write.
type stalledSender struct {
	entered chan struct{}
	release chan struct{}

	mu      sync.Mutex
	actions []string
}

func newStalledSender() *stalledSender {
	return &stalledSender{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (s *stalledSender) DoAction(actionName string, _ map[string]string) error {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	<-s.release

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, actionName)
	return nil
}

func (s *stalledSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

func TestSubscriber_StalledSenderDoesNotBlockPublish(t *testing.T) {
	sender := newStalledSender()
	bus := event.NewMemoryBus()
	sub := NewSubscriber(sender, bus, DefaultActions())
	sub.Subscribe()

	crit := &domain.RollResult{Total: 20, Visual: "(20)", CriticalMessage: domain.CriticalSuccessMessage}

	req := domain.RollRequest{Platform: domain.PlatformDiscord, Username: "alice", Command: "/r 1d20"}
	published := make(chan error, 1)
	go func() {
		published <- bus.Publish(context.Background(), event.NewRollEvaluatedEvent(req, crit))
	}()

	select {
	case err := <-published:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Publish waited on a stalled Streamer.bot action")
	}

	<-sender.entered
	assert.Zero(t, sender.calls())

	close(sender.release)
	sub.Stop()
	assert.Equal(t, 1, sender.calls())
}

func TestSubscriber_FullQueueDropsRolls(t *testing.T) {
	sender := newStalledSender()
	bus := event.NewMemoryBus()
	sub := NewSubscriber(sender, bus, DefaultActions())
	sub.Subscribe()

	crit := &domain.RollResult{Total: 1, Visual: "(1)", CriticalMessage: domain.CriticalFailureMessage}

	// The first action occupies the worker, the next DeliveryQueueSize fill
	// the queue and the last one has nowhere to go.
	publishRoll(t, bus, crit)
	<-sender.entered
	for range DeliveryQueueSize + 1 {
		publishRoll(t, bus, crit)
	}

	close(sender.release)
	sub.Stop()
	assert.Equal(t, DeliveryQueueSize+1, sender.calls())
}

func TestSubscriber_IgnoresRollsAfterStop(t *testing.T) {
	sender := new(MockActionSender)
	bus := event.NewMemoryBus()
	sub := NewSubscriber(sender, bus, DefaultActions())
	sub.Subscribe()
	sub.Stop()

	publishRoll(t, bus, &domain.RollResult{Total: 20, Visual: "(20)", CriticalMessage: domain.CriticalSuccessMessage})

	sender.AssertNotCalled(t, "DoAction", mock.Anything, mock.Anything)
	assert.NotPanics(t, sub.Stop)
}

func TestSubscriber_StopEndsWorker(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		sub := NewSubscriber(new(MockActionSender), event.NewMemoryBus(), DefaultActions())
		sub.Subscribe()
		sub.Stop()
	})
}
