package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/absmach/fedwatch/snapshot"
)

// MockService is a mock implementation of the watcher.Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) View(ctx context.Context) (snapshot.View, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.View), args.Error(1)
}

func (m *MockService) Refresh(ctx context.Context) (snapshot.View, error) {
	args := m.Called(ctx)
	return args.Get(0).(snapshot.View), args.Error(1)
}

func (m *MockService) ListHistory(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(snapshot.HistoryPage), args.Error(1)
}

func (m *MockService) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockService) Stop() error {
	args := m.Called()
	return args.Error(0)
}
