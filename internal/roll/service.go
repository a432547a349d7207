package roll

import (
	"context"
	"fmt"
	"time"

	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/event"
	"github.com/navelogic/rpgbot/internal/logger"
	"github.com/navelogic/rpgbot/internal/metrics"
)

// Service defines the interface for dice roll operations
type Service interface {
	Roll(ctx context.Context, req domain.RollRequest) (*domain.RollResult, error)
	Validate(command string) bool
	CacheStats() CacheStats
	ClearCache(ctx context.Context)
	CheckHealth(ctx context.Context) error
}

type service struct {
	evaluator *dice.Evaluator
	cache     *expressionCache
	bus       event.Bus
}

// NewService creates a new roll service. A nil source selects
// dice.DefaultSource; a nil bus disables roll events.
func NewService(source dice.Source, cacheConfig CacheConfig, bus event.Bus) Service {
	return &service{
		evaluator: dice.NewEvaluator(source),
		cache:     newExpressionCache(cacheConfig),
		bus:       bus,
	}
}

// Roll evaluates req.Command. Core evaluation errors are returned unwrapped so
// their text can be shown to the user as is.
func (s *service) Roll(ctx context.Context, req domain.RollRequest) (*domain.RollResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	expr, err := s.parse(req.Command)
	if err != nil {
		return nil, s.reject(ctx, req, err)
	}

	evaluator := s.evaluator
	if req.Seed != nil {
		evaluator = dice.NewEvaluator(dice.NewSeededSource(*req.Seed))
	}

	result, err := evaluator.EvaluateExpression(ctx, expr)
	if err != nil {
		return nil, s.reject(ctx, req, err)
	}

	metrics.RecordRoll(req.Platform, result, time.Since(start))
	log.Info(LogMsgRollEvaluated,
		"platform", req.Platform,
		"username", req.Username,
		"expression", expr.Source,
		"total", result.Total,
		"critical", result.CriticalKind())

	s.publish(ctx, event.NewRollEvaluatedEvent(req, result))
	return result, nil
}

// Validate reports whether command is syntactically valid.
func (s *service) Validate(command string) bool {
	return dice.Validate(command)
}

func (s *service) CacheStats() CacheStats {
	return s.cache.GetStats()
}

func (s *service) ClearCache(ctx context.Context) {
	s.cache.Clear()
	logger.FromContext(ctx).Info(LogMsgCacheCleared)
}

// CheckHealth rolls a single one-sided die through the configured source.
func (s *service) CheckHealth(ctx context.Context) error {
	expr, err := dice.ParseExpression(healthCheckExpression)
	if err != nil {
		return fmt.Errorf("health check expression: %w", err)
	}
	result, err := s.evaluator.EvaluateExpression(ctx, expr)
	if err != nil {
		return fmt.Errorf("health check roll: %w", err)
	}
	if result.Total != 1 {
		return fmt.Errorf("health check roll: dice source returned %d for 1d1", result.Total)
	}
	return nil
}

// parse looks up the keyword-less expression in the cache before scanning it.
// "/r 1d6" and "/ROLAR 1d6" share an entry.
func (s *service) parse(command string) (dice.Expression, error) {
	source, ok := dice.ExtractExpression(command)
	if !ok {
		return dice.Expression{}, domain.ErrInvalidFormat
	}

	if expr, hit := s.cache.Get(source); hit {
		metrics.RecordCacheLookup(true)
		return expr, nil
	}
	metrics.RecordCacheLookup(false)

	expr, err := dice.ParseExpression(source)
	if err != nil {
		return dice.Expression{}, err
	}
	s.cache.Set(source, expr)
	return expr, nil
}

func (s *service) reject(ctx context.Context, req domain.RollRequest, err error) error {
	log := logger.FromContext(ctx)
	metrics.RecordRollError(err)

	if domain.IsEvaluationError(err) {
		log.Info(LogMsgRollRejected,
			"platform", req.Platform,
			"username", req.Username,
			"command", req.Command,
			"error_kind", domain.ErrorKind(err))
		s.publish(ctx, event.NewRollRejectedEvent(req, err))
		return err
	}

	log.Error(LogMsgRollFailed, "command", req.Command, "error", err)
	return fmt.Errorf("failed to evaluate roll: %w", err)
}

// publish forwards evt to the bus. Subscriber failures never fail a roll.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
