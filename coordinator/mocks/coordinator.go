package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/absmach/fedwatch/snapshot"
)

// MockCoordinator is a mock implementation of the coordinator.Coordinator interface
type MockCoordinator struct {
	mock.Mock
}

func (m *MockCoordinator) GetMetrics(ctx context.Context) (snapshot.Metrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.Metrics), args.Error(1)
}

func (m *MockCoordinator) GetStatus(ctx context.Context) (snapshot.Status, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.Status), args.Error(1)
}
