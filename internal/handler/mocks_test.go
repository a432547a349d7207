package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/roll"
)

// MockRollService mocks roll.Service
type MockRollService struct {
	mock.Mock
}

func (m *MockRollService) Roll(ctx context.Context, req domain.RollRequest) (*domain.RollResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RollResult), args.Error(1)
}

func (m *MockRollService) Validate(command string) bool {
	args := m.Called(command)
	return args.Bool(0)
}

func (m *MockRollService) CacheStats() roll.CacheStats {
	args := m.Called()
	return args.Get(0).(roll.CacheStats)
}

func (m *MockRollService) ClearCache(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockRollService) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
