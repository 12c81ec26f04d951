package repository

import (
	"context"
	"time"

	"github.com/printq/printq/internal/domain/model"
)

// OrderRepository describes persistence operations with print orders.
//
// The pending queue is ordered by (submitted_at, id); "first" is always
// recomputed from that ordering, never cached.
type OrderRepository interface {
	// Create inserts a pending order. The availability switch is consulted
	// inside the same transaction; a stopped service yields
	// errors.ServiceUnavailableError and no row.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// ListByStatus returns orders with the given status. Pending orders come
	// queue-ordered (oldest first); an empty status lists everything, newest
	// first.
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	// FirstPending returns the order with the earliest submission time among
	// pending orders, or errors.ErrNotFound when the queue is empty.
	FirstPending(ctx context.Context) (*model.Order, error)
	// Rank returns the 1-based queue position of a pending order.
	Rank(ctx context.Context, id string) (int, error)
	// TransitionFirst atomically verifies that id is the current first
	// pending order and moves it to the given terminal status. Returns
	// errors.ErrNotFirstInQueue when an earlier pending order exists and
	// errors.ErrNotFound when id is absent or no longer pending.
	TransitionFirst(ctx context.Context, id string, status model.OrderStatus) error
	Stats(ctx context.Context, dayStart time.Time) (*model.QueueStats, error)
	// PurgeTerminal deletes terminal orders older than the cutoff and
	// returns the number of removed rows.
	PurgeTerminal(ctx context.Context, before time.Time) (int64, error)
}
