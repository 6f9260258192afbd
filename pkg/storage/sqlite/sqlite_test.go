package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/pkg/storage/sqlite"
	"github.com/absmach/fedwatch/snapshot"
)

func newHistory(t *testing.T) storage.HistoryRepository {
	t.Helper()

	history, err := sqlite.NewHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	return history
}

func record(i int, at time.Time) snapshot.Record {
	return snapshot.Record{
		ID: uuid.NewString(),
		Metrics: &snapshot.Metrics{
			FederatedModel: snapshot.Scores{AUC: snapshot.Float(0.9)},
		},
		Status: &snapshot.Status{
			Status:  snapshot.StatusTraining,
			Message: fmt.Sprintf("round %d", i),
		},
		CreatedAt: at,
	}
}

func TestAppendAndLatest(t *testing.T) {
	t.Parallel()

	history := newHistory(t)

	_, err := history.Latest(context.Background())
	assert.ErrorIs(t, err, errors.ErrNotFound)

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 3 {
		require.NoError(t, history.Append(context.Background(), record(i, base.Add(time.Duration(i)*time.Second))))
	}

	latest, err := history.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest.Status)
	assert.Equal(t, "round 2", latest.Status.Message)
	require.NotNil(t, latest.Metrics)
	require.NotNil(t, latest.Metrics.FederatedModel.AUC)
	assert.InDelta(t, 0.9, *latest.Metrics.FederatedModel.AUC, 1e-9)
}

func TestAppendEmptyID(t *testing.T) {
	t.Parallel()

	history := newHistory(t)

	err := history.Append(context.Background(), snapshot.Record{})
	assert.ErrorIs(t, err, errors.ErrEmptyKey)
}

func TestAppendFailedCycle(t *testing.T) {
	t.Parallel()

	history := newHistory(t)

	require.NoError(t, history.Append(context.Background(), snapshot.Record{
		ID:        uuid.NewString(),
		Error:     "connection refused",
		CreatedAt: time.Now().UTC(),
	}))

	latest, err := history.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connection refused", latest.Error)
	assert.Nil(t, latest.Metrics)
	assert.Nil(t, latest.Status)
}

func TestListPagination(t *testing.T) {
	t.Parallel()

	history := newHistory(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 5 {
		require.NoError(t, history.Append(context.Background(), record(i, base.Add(time.Duration(i)*time.Second))))
	}

	page, err := history.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "round 4", page.Records[0].Status.Message)
	assert.Equal(t, "round 3", page.Records[1].Status.Message)

	page, err = history.List(context.Background(), 4, 10)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "round 0", page.Records[0].Status.Message)

	page, err = history.List(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Records)
}
