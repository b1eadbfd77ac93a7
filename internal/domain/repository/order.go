package repository

import (
	"context"
	"time"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// OrderRepository persists the order aggregate, including items and history.
type OrderRepository interface {
	// Create stores the order with its item list and initial history.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	// GetByID loads the full aggregate: order row, items, history.
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByCode(ctx context.Context, code string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// Update writes the aggregate back if the stored version still equals
	// expectedVersion; otherwise it returns ErrConflict. Items are
	// reconciled (upsert + delete-by-absence) and history entries with a
	// zero ID are appended, all within one transaction.
	Update(ctx context.Context, order *model.Order, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	// PurgeOlderThan removes orders created before the cutoff, returning
	// the number of deleted orders.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
