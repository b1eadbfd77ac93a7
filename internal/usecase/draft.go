package usecase

import (
	"context"

	"github.com/khanhng/orderflow/internal/capability"
	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/domain/repository"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/finance"
)

// DraftUseCase implements the financial-change approval overlay: restricted
// edits become pending proposals that only land on the live order when a
// reviewer approves them.
type DraftUseCase struct {
	orders repository.OrderRepository
	drafts repository.DraftRepository
	bus    events.Publisher
}

// NewDraftUseCase constructs DraftUseCase.
func NewDraftUseCase(orders repository.OrderRepository, drafts repository.DraftRepository, bus events.Publisher) *DraftUseCase {
	return &DraftUseCase{orders: orders, drafts: drafts, bus: bus}
}

// Pending returns the order's pending draft, or ErrNoPendingDraft.
func (u *DraftUseCase) Pending(ctx context.Context, orderID int64) (*model.OrderDraft, error) {
	draft, err := u.drafts.GetPending(ctx, orderID)
	if err != nil {
		if err == domainErrors.ErrNotFound {
			return nil, domainErrors.ErrNoPendingDraft
		}
		return nil, err
	}
	return draft, nil
}

// Propose snapshots the current and proposed state and persists a pending
// draft, replacing any prior one for the same order. The original snapshot
// of an earlier pending draft is carried forward so rejection always
// restores the true pre-draft state.
func (u *DraftUseCase) Propose(ctx context.Context, actor *model.User, order *model.Order, snap model.OrderSnapshot, prior *model.OrderDraft) (*model.OrderDraft, error) {
	original := order.Snapshot()
	if prior != nil {
		original = prior.Original
	}

	// Cascade the recalculation into the proposed snapshot on a scratch
	// copy so reviewers see final amounts, not raw inputs.
	scratch := model.Order{Type: order.Type}
	scratch.Items = append([]model.Painting(nil), order.Items...)
	scratch.ApplySnapshot(snap)
	finance.Recalculate(&scratch)
	proposed := scratch.Snapshot()

	draft := &model.OrderDraft{
		OrderID:      order.ID,
		ProposedBy:   actor.ID,
		ProposerName: actor.Name,
		Status:       model.DraftStatusPending,
		Original:     original,
		Proposed:     proposed,
	}

	saved, err := u.drafts.Save(ctx, draft)
	if err != nil {
		return nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeDraftPending,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   "financial edit awaiting review",
		Roles:     model.RoleSet{model.RoleAdmin},
	})
	return saved, nil
}

// Approve replays the proposed snapshot onto the freshly loaded order,
// re-runs recalculation, and discards the draft.
func (u *DraftUseCase) Approve(ctx context.Context, actor *model.User, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !capability.Resolve(order, actor.Roles).CanReviewDraft {
		return nil, domainErrors.ErrForbidden
	}

	draft, err := u.Pending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	version := order.Version
	order.ApplySnapshot(draft.Proposed)
	finance.Recalculate(order)
	order.AppendHistory(order.Status, actor.Name, "financial edit approved")

	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}
	if err := u.drafts.DeletePending(ctx, orderID); err != nil {
		return nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeDraftApproved,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   "financial edit approved",
		Roles:     model.RoleSet{model.RoleSale, model.RoleAdmin},
	})
	return order, nil
}

// Reject marks the proposal rejected with a reason and discards it; the
// live order's financial fields stay untouched.
func (u *DraftUseCase) Reject(ctx context.Context, actor *model.User, orderID int64, reason string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !capability.Resolve(order, actor.Roles).CanReviewDraft {
		return nil, domainErrors.ErrForbidden
	}

	if _, err := u.Pending(ctx, orderID); err != nil {
		return nil, err
	}

	version := order.Version
	order.AppendHistory(order.Status, actor.Name, "financial edit rejected: "+reason)
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}
	if err := u.drafts.DeletePending(ctx, orderID); err != nil {
		return nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeDraftRejected,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   "financial edit rejected: " + reason,
		Roles:     model.RoleSet{model.RoleSale, model.RoleAdmin},
	})
	return order, nil
}
