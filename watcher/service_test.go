package watcher_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/absmach/fedwatch/coordinator/mocks"
	pkgerrors "github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/snapshot"
	"github.com/absmach/fedwatch/watcher"
)

func newService(c *mocks.MockCoordinator) (watcher.Service, storage.HistoryRepository) {
	history := storage.NewInMemoryHistory(0)

	return watcher.NewService(c, history, watcher.DefPollInterval, slog.Default()), history
}

func testMetrics() snapshot.Metrics {
	return snapshot.Metrics{
		FederatedModel: snapshot.Scores{
			AUC:    snapshot.Float(0.95),
			Recall: snapshot.Float(0.88),
		},
		CommunicationCostMB: snapshot.Float(12.5),
	}
}

func testStatus() snapshot.Status {
	return snapshot.Status{
		Status:   snapshot.StatusTraining,
		Message:  "Training round 3 of 10",
		Progress: 30,
	}
}

func TestViewBeforeFirstCycle(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	svc, _ := newService(c)

	v, err := svc.View(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Loading)
	assert.Nil(t, v.Metrics)
	assert.Nil(t, v.Status)
	assert.Empty(t, v.Error)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		metrics    snapshot.Metrics
		metricsErr error
		status     snapshot.Status
		statusErr  error
		expMetrics bool
		expStatus  bool
		expError   string
	}{
		{
			name:       "both fetches succeed",
			metrics:    testMetrics(),
			status:     testStatus(),
			expMetrics: true,
			expStatus:  true,
		},
		{
			name:       "metrics fetch fails, cycle still succeeds",
			metricsErr: errors.New("metrics not available"),
			status:     testStatus(),
			expMetrics: false,
			expStatus:  true,
		},
		{
			name:       "status fetch fails, cycle fails",
			metrics:    testMetrics(),
			statusErr:  errors.New("connection refused"),
			expMetrics: false,
			expStatus:  false,
			expError:   "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := new(mocks.MockCoordinator)
			c.On("GetMetrics", mock.Anything).Return(tt.metrics, tt.metricsErr)
			c.On("GetStatus", mock.Anything).Return(tt.status, tt.statusErr)
			svc, _ := newService(c)

			v, err := svc.Refresh(context.Background())
			require.NoError(t, err)

			assert.False(t, v.Loading)
			assert.Equal(t, tt.expError, v.Error)
			assert.False(t, v.UpdatedAt.IsZero())
			if tt.expMetrics {
				require.NotNil(t, v.Metrics)
				assert.Equal(t, tt.metrics, *v.Metrics)
			} else {
				assert.Nil(t, v.Metrics)
			}
			if tt.expStatus {
				require.NotNil(t, v.Status)
				assert.Equal(t, tt.status, *v.Status)
			} else {
				assert.Nil(t, v.Status)
			}
		})
	}
}

func TestRefreshStatusFailureKeepsPriorSnapshots(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil).Once()
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil).Once()
	c.On("GetMetrics", mock.Anything).Return(snapshot.Metrics{}, errors.New("timeout")).Once()
	c.On("GetStatus", mock.Anything).Return(snapshot.Status{}, errors.New("timeout")).Once()

	svc, _ := newService(c)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first.Metrics)
	require.NotNil(t, first.Status)

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "timeout", second.Error)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Status, second.Status)
}

func TestRefreshOverwritesPriorMetrics(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil).Once()
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil)
	c.On("GetMetrics", mock.Anything).Return(snapshot.Metrics{}, errors.New("metrics not available")).Once()

	svc, _ := newService(c)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first.Metrics)

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Error)
	assert.Nil(t, second.Metrics, "a successful cycle without metrics clears the previous ones")
	require.NotNil(t, second.Status)
}

func TestRefreshRecordsHistory(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil).Once()
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil).Once()
	c.On("GetMetrics", mock.Anything).Return(snapshot.Metrics{}, errors.New("down")).Once()
	c.On("GetStatus", mock.Anything).Return(snapshot.Status{}, errors.New("down")).Once()

	svc, history := newService(c)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	page, err := history.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)

	failed := page.Records[0]
	assert.Equal(t, "down", failed.Error)
	assert.Nil(t, failed.Metrics)
	assert.Nil(t, failed.Status)

	ok := page.Records[1]
	assert.Empty(t, ok.Error)
	require.NotNil(t, ok.Metrics)
	require.NotNil(t, ok.Status)
	assert.NotEmpty(t, ok.ID)
}

func TestListHistoryDefaultLimit(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil)
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil)

	svc, _ := newService(c)

	for range 3 {
		_, err := svc.Refresh(context.Background())
		require.NoError(t, err)
	}

	page, err := svc.ListHistory(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Records, 3)
	assert.EqualValues(t, 100, page.Limit)
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil)
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil)

	svc, _ := newService(c)

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	require.Eventually(t, func() bool {
		v, err := svc.View(context.Background())

		return err == nil && !v.Loading
	}, time.Second, 10*time.Millisecond)

	require.ErrorIs(t, svc.Start(context.Background()), pkgerrors.ErrWatcherActive)

	require.NoError(t, svc.Stop())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}

	require.ErrorIs(t, svc.Stop(), pkgerrors.ErrWatcherDone)

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, pkgerrors.ErrWatcherDone)
}

func TestStartContextCancel(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil)
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil)

	svc, _ := newService(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		v, err := svc.View(context.Background())

		return err == nil && !v.Loading
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestViewAfterStopKeepsLastSnapshot(t *testing.T) {
	t.Parallel()

	c := new(mocks.MockCoordinator)
	c.On("GetMetrics", mock.Anything).Return(testMetrics(), nil)
	c.On("GetStatus", mock.Anything).Return(testStatus(), nil)

	svc, _ := newService(c)

	before, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Stop())

	after, err := svc.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
