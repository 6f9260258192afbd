package storage

import (
	"context"

	"github.com/absmach/fedwatch/snapshot"
)

// HistoryRepository stores the outcome of every fetch cycle. List pages
// newest-first.
type HistoryRepository interface {
	Append(ctx context.Context, record snapshot.Record) error
	List(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error)
	Latest(ctx context.Context) (snapshot.Record, error)
}
