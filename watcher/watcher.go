package watcher

import (
	"context"

	"github.com/absmach/fedwatch/snapshot"
)

type Service interface {
	// View returns the current reconciled view.
	View(ctx context.Context) (snapshot.View, error)

	// Refresh runs one fetch cycle immediately and returns the resulting
	// view. It shares reconcile semantics with timed cycles: a metrics
	// failure leaves the cycle successful, a status failure surfaces as
	// the view error while prior snapshots stay in place.
	Refresh(ctx context.Context) (snapshot.View, error)

	// ListHistory pages past cycle outcomes, newest first.
	ListHistory(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error)

	// Start runs the polling loop: one cycle immediately, then one per
	// interval. It blocks until the context is cancelled or Stop is
	// called. Cycles are not serialized across ticks; a slow cycle may
	// overlap the next one.
	Start(ctx context.Context) error

	// Stop terminates the polling loop. Results of cycles still in
	// flight are discarded.
	Stop() error
}
