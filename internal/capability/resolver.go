// Package capability derives, from an order snapshot and the caller's role
// set, the exact set of actions the caller may currently perform. Resolution
// is pure and must be re-run against fresh state before every mutation.
package capability

import (
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/lifecycle"
)

// Capabilities is the resolved action set for one caller on one order.
type Capabilities struct {
	CanEdit           bool `json:"canEdit"`
	CanEditFinancials bool `json:"canEditFinancials"`
	CanChangeStatus   bool `json:"canChangeStatus"`

	CanPrint          bool `json:"canPrint"`
	CanAccept         bool `json:"canAccept"`
	CanComplete       bool `json:"canComplete"`
	CanReceiveArtwork bool `json:"canReceiveArtwork"`
	CanReceiveFrame   bool `json:"canReceiveFrame"`

	CanRequestRework bool `json:"canRequestRework"`
	CanCancel        bool `json:"canCancel"`
	CanReturn        bool `json:"canReturn"`
	CanResend        bool `json:"canResend"`
	CanStore         bool `json:"canStore"`

	CanReviewDraft bool `json:"canReviewDraft"`
	CanDelete      bool `json:"canDelete"`
}

// AcceptTarget returns the status the order moves to when the given role
// claims its next step, or false when no step is claimable.
func AcceptTarget(order *model.Order, role model.Role) (model.OrderStatus, bool) {
	hasFraming := order.RequiresFraming()

	switch role {
	case model.RoleProduction:
		if hasFraming &&
			order.Status == model.OrderStatusProcessing &&
			order.PrintingStatus == model.PrintingStatusReceivedByProduction {
			return model.OrderStatusAwaitingProduction, true
		}
	case model.RolePacker:
		if !hasFraming &&
			order.Status == model.OrderStatusProcessing &&
			order.PrintingStatus == model.PrintingStatusPrinted {
			return model.OrderStatusAwaitingPacking, true
		}
		if hasFraming && order.Status == model.OrderStatusFramed {
			return model.OrderStatusAwaitingPacking, true
		}
	case model.RoleShipper:
		if order.Status == model.OrderStatusPacked {
			return model.OrderStatusAwaitingDispatch, true
		}
	}
	return "", false
}

// CompleteTarget returns the status the order moves to when the given role
// marks its step done, or false when the role has no step in flight.
func CompleteTarget(order *model.Order, role model.Role) (model.OrderStatus, bool) {
	switch role {
	case model.RoleProduction:
		if order.Status == model.OrderStatusAwaitingProduction ||
			order.Status == model.OrderStatusAwaitingReprod {
			return model.OrderStatusFramed, true
		}
	case model.RolePacker:
		if order.Status == model.OrderStatusAwaitingPacking {
			return model.OrderStatusPacked, true
		}
	case model.RoleShipper:
		if order.Status == model.OrderStatusAwaitingDispatch {
			return model.OrderStatusSent, true
		}
	case model.RoleAccountant:
		if order.Status == model.OrderStatusSent {
			return model.OrderStatusCompleted, true
		}
	}
	return "", false
}

// Resolve computes the caller's permitted actions for the order. It never
// caches: callers re-resolve after every mutation.
func Resolve(order *model.Order, roles model.RoleSet) Capabilities {
	caps := Capabilities{}
	admin := roles.Has(model.RoleAdmin)

	caps.CanEdit = admin || roles.Has(model.RoleSale)
	caps.CanEditFinancials = admin
	caps.CanChangeStatus = admin
	caps.CanReviewDraft = admin
	caps.CanDelete = admin

	if roles.Has(model.RolePrinter) {
		caps.CanPrint = printableStatus(order.Status) && !allPrinted(order)
	}

	for _, role := range roles {
		if _, ok := AcceptTarget(order, role); ok {
			caps.CanAccept = true
		}
		if _, ok := CompleteTarget(order, role); ok {
			caps.CanComplete = true
		}
	}

	if roles.Has(model.RolePacker) {
		caps.CanReceiveArtwork = hasReceivableArtwork(order)
	}
	if roles.Has(model.RoleProduction) {
		caps.CanReceiveFrame = hasReceivableFrames(order)
	}

	if admin || roles.Has(model.RoleSale) {
		caps.CanRequestRework = lifecycle.CanTransition(order.Status, model.OrderStatusFixRequested)
		caps.CanCancel = lifecycle.CanTransition(order.Status, model.OrderStatusCancelled)
	}
	if admin || roles.Has(model.RoleShipper) {
		caps.CanReturn = lifecycle.CanTransition(order.Status, model.OrderStatusCustomerReturned)
		caps.CanResend = lifecycle.CanTransition(order.Status, model.OrderStatusResentToCustomer)
	}
	if admin || roles.Has(model.RolePacker) {
		caps.CanStore = lifecycle.CanTransition(order.Status, model.OrderStatusStored)
	}

	return caps
}

func printableStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusNew, model.OrderStatusProcessing, model.OrderStatusAwaitingReprod:
		return true
	}
	return false
}

func allPrinted(order *model.Order) bool {
	if len(order.Items) == 0 {
		return false
	}
	for i := range order.Items {
		if !order.Items[i].IsPrinted {
			return false
		}
	}
	return true
}

// hasReceivableArtwork reports printed items without framing that packing
// has not received yet. Only non-framing items are eligible for packing
// receipt.
func hasReceivableArtwork(order *model.Order) bool {
	for i := range order.Items {
		it := &order.Items[i]
		if !it.RequiresFraming() && it.IsPrinted && !it.ReceivedByPacking {
			return true
		}
	}
	return false
}

// hasReceivableFrames reports printed framing items production has not
// received yet.
func hasReceivableFrames(order *model.Order) bool {
	for i := range order.Items {
		it := &order.Items[i]
		if it.RequiresFraming() && it.IsPrinted && !it.ReceivedByProduction {
			return true
		}
	}
	return false
}
