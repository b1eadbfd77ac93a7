package repository

import (
	"context"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// DraftRepository persists pending financial edit proposals.
type DraftRepository interface {
	// Save stores the draft, replacing any pending draft for the same order.
	Save(ctx context.Context, draft *model.OrderDraft) (*model.OrderDraft, error)
	// GetPending returns the pending draft for the order or ErrNotFound.
	GetPending(ctx context.Context, orderID int64) (*model.OrderDraft, error)
	// DeletePending removes the pending draft for the order, if any.
	DeletePending(ctx context.Context, orderID int64) error
}
