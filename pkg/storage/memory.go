package storage

import (
	"context"
	"sync"

	"github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/snapshot"
)

const DefHistoryCap = 1000

type inMemoryHistory struct {
	sync.Mutex

	records []snapshot.Record
	cap     int
}

// NewInMemoryHistory returns a bounded in-memory history. When full, the
// oldest record is dropped.
func NewInMemoryHistory(capacity int) HistoryRepository {
	if capacity <= 0 {
		capacity = DefHistoryCap
	}

	return &inMemoryHistory{
		records: make([]snapshot.Record, 0, capacity),
		cap:     capacity,
	}
}

func (s *inMemoryHistory) Append(_ context.Context, record snapshot.Record) error {
	if record.ID == "" {
		return errors.ErrEmptyKey
	}

	s.Lock()
	defer s.Unlock()

	s.records = append(s.records, record)
	if len(s.records) > s.cap {
		s.records = s.records[1:]
	}

	return nil
}

func (s *inMemoryHistory) List(_ context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	s.Lock()
	defer s.Unlock()

	total := uint64(len(s.records))
	page := snapshot.HistoryPage{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}
	if offset >= total {
		return page, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page.Records = make([]snapshot.Record, 0, end-offset)
	for i := offset; i < end; i++ {
		// records are stored oldest-first; serve newest-first
		page.Records = append(page.Records, s.records[total-1-i])
	}

	return page, nil
}

func (s *inMemoryHistory) Latest(_ context.Context) (snapshot.Record, error) {
	s.Lock()
	defer s.Unlock()

	if len(s.records) == 0 {
		return snapshot.Record{}, errors.ErrNotFound
	}

	return s.records[len(s.records)-1], nil
}
