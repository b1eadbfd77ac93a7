package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khanhng/orderflow/internal/capability"
	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/domain/repository"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/finance"
	"github.com/khanhng/orderflow/internal/lifecycle"
)

// ReworkKind selects the rework branch a request drives.
type ReworkKind string

const (
	ReworkKindFix     ReworkKind = "fix"
	ReworkKindReprint ReworkKind = "reprint"
	ReworkKindRecut   ReworkKind = "recut"
)

// ReceiveCategory selects which item class a receive request targets.
type ReceiveCategory string

const (
	ReceiveCategoryArtwork ReceiveCategory = "artwork"
	ReceiveCategoryFrame   ReceiveCategory = "frame"
)

// CompleteInput carries step-specific completion data.
type CompleteInput struct {
	Role           model.Role
	Note           string
	ActualReceived int64
	ShippingMethod model.ShippingMethod
	TrackingCode   string
	CarrierNote    string
	CarrierCost    int64
}

// OrderUseCase orchestrates the order lifecycle. Every mutation re-loads
// the order, re-validates the precondition against fresh state, and commits
// with a version check so concurrent writers fail with ErrConflict instead
// of overwriting each other.
type OrderUseCase struct {
	orders       repository.OrderRepository
	drafts       *DraftUseCase
	bus          events.Publisher
	deleteSecret string
	retention    time.Duration
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, drafts *DraftUseCase, bus events.Publisher, deleteSecret string, retention time.Duration) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		drafts:       drafts,
		bus:          bus,
		deleteSecret: deleteSecret,
		retention:    retention,
	}
}

// Create registers a new order. Restricted to the order-intake role.
func (u *OrderUseCase) Create(ctx context.Context, actor *model.User, snap model.OrderSnapshot) (*model.Order, error) {
	if !actor.Roles.Has(model.RoleSale) && !actor.Roles.Has(model.RoleAdmin) {
		return nil, domainErrors.ErrForbidden
	}
	if err := ValidateSnapshot(snap); err != nil {
		return nil, err
	}

	order := &model.Order{
		Code:           newOrderCode(),
		Status:         model.OrderStatusNew,
		PrintingStatus: model.PrintingStatusNotPrinted,
		CuttingStatus:  model.CuttingStatusNotCut,
		CreatedBy:      actor.ID,
	}
	order.ApplySnapshot(snap)
	finance.Recalculate(order)
	order.AppendHistory(model.OrderStatusNew, actor.Name, "order created")

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeCreated,
		OrderID:   created.ID,
		OrderCode: created.Code,
		Actor:     actor.Name,
		Message:   "order created",
	})
	return created, nil
}

// Get loads one order aggregate.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns all orders.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Update applies an edit payload. Sale edits that touch financial fields,
// or that arrive while a financial draft is already pending, are rerouted
// into the draft approval flow and leave the live order untouched.
func (u *OrderUseCase) Update(ctx context.Context, actor *model.User, id int64, snap model.OrderSnapshot) (*model.Order, *model.OrderDraft, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	caps := capability.Resolve(order, actor.Roles)
	if !caps.CanEdit {
		return nil, nil, domainErrors.ErrForbidden
	}
	if err := ValidateSnapshot(snap); err != nil {
		return nil, nil, err
	}

	if !caps.CanEditFinancials {
		pending, err := u.drafts.Pending(ctx, order.ID)
		if err != nil && err != domainErrors.ErrNoPendingDraft {
			return nil, nil, err
		}
		if TouchesFinancials(order, snap) || pending != nil {
			draft, err := u.drafts.Propose(ctx, actor, order, snap, pending)
			if err != nil {
				return nil, nil, err
			}
			return order, draft, nil
		}
	}

	version := order.Version
	order.ApplySnapshot(snap)
	finance.Recalculate(order)
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeUpdated,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   "order updated",
	})
	return order, nil, nil
}

// ChangeStatus performs a direct transition with a free-text note.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, actor *model.User, id int64, next model.OrderStatus, note string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !capability.Resolve(order, actor.Roles).CanChangeStatus {
		return nil, domainErrors.ErrForbidden
	}

	version := order.Version
	if err := lifecycle.Transition(order, next, actor.Name, note); err != nil {
		return nil, err
	}
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.publishStatus(order, actor.Name, note)
	return order, nil
}

// Accept lets a role claim its next fulfillment step, recording an
// assignment and advancing the order.
func (u *OrderUseCase) Accept(ctx context.Context, actor *model.User, id int64, role model.Role) (*model.Order, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, role)
	}
	if !actor.Roles.Has(role) {
		return nil, domainErrors.ErrForbidden
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, ok := capability.AcceptTarget(order, role)
	if !ok {
		return nil, fmt.Errorf("%w: no claimable step for role %s in status %s", domainErrors.ErrInvalidTransition, role, order.Status)
	}

	version := order.Version
	if err := lifecycle.Transition(order, target, actor.Name, "step accepted"); err != nil {
		return nil, err
	}
	order.Assignments = append(order.Assignments, model.Assignment{
		Worker:     actor.Name,
		Role:       role,
		AssignedAt: time.Now(),
	})
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.publishStatus(order, actor.Name, "step accepted")
	return order, nil
}

// Complete marks the actor's current step done. The printer role marks all
// items printed and lets aggregation drive the order status; other roles
// advance the order directly, attaching step-specific completion data.
func (u *OrderUseCase) Complete(ctx context.Context, actor *model.User, id int64, input CompleteInput) (*model.Order, error) {
	if !model.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, input.Role)
	}
	if !actor.Roles.Has(input.Role) {
		return nil, domainErrors.ErrForbidden
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	version := order.Version

	if input.Role == model.RolePrinter {
		if err := u.completePrinting(order, actor); err != nil {
			return nil, err
		}
	} else {
		target, ok := capability.CompleteTarget(order, input.Role)
		if !ok {
			return nil, fmt.Errorf("%w: no step in flight for role %s in status %s", domainErrors.ErrInvalidTransition, input.Role, order.Status)
		}
		applyCompletionData(order, input)
		if err := lifecycle.Transition(order, target, actor.Name, completionNote(input)); err != nil {
			return nil, err
		}
	}

	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.publishStatus(order, actor.Name, "step completed")
	return order, nil
}

func (u *OrderUseCase) completePrinting(order *model.Order, actor *model.User) error {
	if !capability.Resolve(order, actor.Roles).CanPrint {
		return fmt.Errorf("%w: order %s is not printable in status %s", domainErrors.ErrInvalidTransition, order.Code, order.Status)
	}

	now := time.Now()
	for i := range order.Items {
		it := &order.Items[i]
		if it.IsPrinted {
			continue
		}
		it.IsPrinted = true
		it.PrintedBy = actor.Name
		it.PrintedAt = &now
	}
	lifecycle.AggregatePrinting(order, actor.Name)
	return nil
}

func applyCompletionData(order *model.Order, input CompleteInput) {
	switch input.Role {
	case model.RoleShipper:
		if input.ShippingMethod != "" {
			order.ShippingMethod = input.ShippingMethod
		}
		if input.TrackingCode != "" {
			order.TrackingCode = input.TrackingCode
		}
		if input.CarrierNote != "" {
			order.CarrierNote = input.CarrierNote
		}
		if input.CarrierCost > 0 {
			order.CarrierCost = input.CarrierCost
		}
	case model.RoleAccountant:
		if input.ActualReceived > 0 {
			order.ActualReceived = input.ActualReceived
		}
	}
}

func completionNote(input CompleteInput) string {
	if input.Note != "" {
		return input.Note
	}
	return "step completed"
}

// Receive marks printed items of the given category as received and applies
// the aggregation in the same logical unit. Receiving unprinted items fails
// with ErrInvalidTransition.
func (u *OrderUseCase) Receive(ctx context.Context, actor *model.User, id int64, category ReceiveCategory) (*model.Order, error) {
	var role model.Role
	switch category {
	case ReceiveCategoryArtwork:
		role = model.RolePacker
	case ReceiveCategoryFrame:
		role = model.RoleProduction
	default:
		return nil, fmt.Errorf("%w: unknown receive category %q", domainErrors.ErrValidation, category)
	}
	if !actor.Roles.Has(role) && !actor.Roles.Has(model.RoleAdmin) {
		return nil, domainErrors.ErrForbidden
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	version := order.Version

	now := time.Now()
	marked := 0
	for i := range order.Items {
		it := &order.Items[i]
		if category == ReceiveCategoryFrame {
			if !it.RequiresFraming() || it.ReceivedByProduction {
				continue
			}
			if !it.IsPrinted {
				return nil, fmt.Errorf("%w: item %d not printed yet", domainErrors.ErrInvalidTransition, it.ID)
			}
			it.ReceivedByProduction = true
			it.ProductionReceivedBy = actor.Name
			it.ProductionReceivedAt = &now
			marked++
			continue
		}
		// Only items that never need a frame are eligible for packing receipt.
		if it.RequiresFraming() || it.ReceivedByPacking {
			continue
		}
		if !it.IsPrinted {
			return nil, fmt.Errorf("%w: item %d not printed yet", domainErrors.ErrInvalidTransition, it.ID)
		}
		it.ReceivedByPacking = true
		it.PackingReceivedBy = actor.Name
		it.PackingReceivedAt = &now
		marked++
	}
	if marked == 0 {
		return nil, fmt.Errorf("%w: no receivable %s items", domainErrors.ErrInvalidTransition, category)
	}

	lifecycle.AggregateReceipt(order, actor.Name)
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.publishStatus(order, actor.Name, fmt.Sprintf("%s received", category))
	return order, nil
}

// RequestRework drives one of the rework branches: an order-level fix, an
// item reprint, or a frame recut.
func (u *OrderUseCase) RequestRework(ctx context.Context, actor *model.User, id int64, kind ReworkKind, reason string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	version := order.Version
	caps := capability.Resolve(order, actor.Roles)

	switch kind {
	case ReworkKindFix:
		if !caps.CanRequestRework {
			return nil, domainErrors.ErrForbidden
		}
		if err := lifecycle.Transition(order, model.OrderStatusFixRequested, actor.Name, reason); err != nil {
			return nil, err
		}
	case ReworkKindReprint:
		if !actor.Roles.Has(model.RoleProduction) && !actor.Roles.Has(model.RolePacker) && !actor.Roles.Has(model.RoleAdmin) {
			return nil, domainErrors.ErrForbidden
		}
		if err := lifecycle.TransitionPrinting(order, model.PrintingStatusReprintRequested); err != nil {
			return nil, err
		}
		order.AppendHistory(order.Status, actor.Name, "reprint requested: "+reason)
	case ReworkKindRecut:
		if !actor.Roles.Has(model.RoleProduction) && !actor.Roles.Has(model.RolePacker) && !actor.Roles.Has(model.RoleAdmin) {
			return nil, domainErrors.ErrForbidden
		}
		if !order.RequiresCutting() {
			return nil, fmt.Errorf("%w: order has no frame-cutting items", domainErrors.ErrInvalidTransition)
		}
		if err := lifecycle.TransitionCutting(order, model.CuttingStatusRecutRequested); err != nil {
			return nil, err
		}
		order.AppendHistory(order.Status, actor.Name, "recut requested: "+reason)
	default:
		return nil, fmt.Errorf("%w: unknown rework kind %q", domainErrors.ErrValidation, kind)
	}

	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeReworkRequested,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   string(kind) + ": " + reason,
		Roles:     model.RoleSet{model.RolePrinter, model.RoleProduction, model.RoleAdmin},
	})
	return order, nil
}

// ProductionRequest sends a returned order back to production.
func (u *OrderUseCase) ProductionRequest(ctx context.Context, actor *model.User, id int64, reason string) (*model.Order, error) {
	if !actor.Roles.Has(model.RolePacker) && !actor.Roles.Has(model.RoleAdmin) {
		return nil, domainErrors.ErrForbidden
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	version := order.Version
	if err := lifecycle.Transition(order, model.OrderStatusResentToProduction, actor.Name, reason); err != nil {
		return nil, err
	}
	if err := u.orders.Update(ctx, order, version); err != nil {
		return nil, err
	}

	u.publishStatus(order, actor.Name, reason)
	return order, nil
}

// Delete removes one order. Gated by the shared secret code in addition to
// the admin role.
func (u *OrderUseCase) Delete(ctx context.Context, actor *model.User, id int64, secret string) error {
	if !actor.Roles.Has(model.RoleAdmin) {
		return domainErrors.ErrForbidden
	}
	if secret != u.deleteSecret {
		return domainErrors.ErrSecretMismatch
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		return err
	}

	u.bus.Publish(events.Event{
		Type:      events.TypeDeleted,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor.Name,
		Message:   "order deleted",
	})
	return nil
}

// Purge bulk-deletes orders older than the retention window.
func (u *OrderUseCase) Purge(ctx context.Context, actor *model.User, secret string) (int64, error) {
	if !actor.Roles.Has(model.RoleAdmin) {
		return 0, domainErrors.ErrForbidden
	}
	if secret != u.deleteSecret {
		return 0, domainErrors.ErrSecretMismatch
	}

	cutoff := time.Now().Add(-u.retention)
	purged, err := u.orders.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	u.bus.Publish(events.Event{
		Type:    events.TypePurged,
		Actor:   actor.Name,
		Message: fmt.Sprintf("purged %d orders", purged),
		Roles:   model.RoleSet{model.RoleAdmin},
	})
	return purged, nil
}

func (u *OrderUseCase) publishStatus(order *model.Order, actor, message string) {
	u.bus.Publish(events.Event{
		Type:      events.TypeStatusChanged,
		OrderID:   order.ID,
		OrderCode: order.Code,
		Actor:     actor,
		Message:   message,
	})
}

func newOrderCode() string {
	return "DH-" + strings.ToUpper(uuid.NewString()[:8])
}
