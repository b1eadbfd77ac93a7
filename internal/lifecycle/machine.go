package lifecycle

import (
	"fmt"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
)

// orderTransitions is the fixed adjacency table for the order lifecycle.
// Statuses absent from the table (CANCELLED, STORED) are terminal.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusNew: {
		model.OrderStatusProcessing,
		model.OrderStatusCancelled,
	},
	model.OrderStatusProcessing: {
		model.OrderStatusAwaitingProduction,
		model.OrderStatusFramed,
		model.OrderStatusAwaitingPacking,
		model.OrderStatusCancelled,
	},
	model.OrderStatusAwaitingProduction: {
		model.OrderStatusFramed,
		model.OrderStatusAwaitingReprod,
	},
	model.OrderStatusFramed: {
		model.OrderStatusAwaitingPacking,
		model.OrderStatusFixRequested,
	},
	model.OrderStatusAwaitingPacking: {
		model.OrderStatusPacked,
		model.OrderStatusFixRequested,
	},
	model.OrderStatusPacked: {
		model.OrderStatusAwaitingDispatch,
		model.OrderStatusReceivedBack,
		model.OrderStatusResentToCustomer,
		model.OrderStatusFixRequested,
	},
	model.OrderStatusAwaitingDispatch: {
		model.OrderStatusSent,
		model.OrderStatusFixRequested,
	},
	model.OrderStatusSent: {
		model.OrderStatusCompleted,
		model.OrderStatusCustomerReturned,
		model.OrderStatusFixRequested,
		model.OrderStatusResentToCustomer,
	},
	model.OrderStatusCompleted: {
		model.OrderStatusFixRequested,
	},
	model.OrderStatusCustomerReturned: {
		model.OrderStatusProcessing,
		model.OrderStatusFixRequested,
		model.OrderStatusReceivedBack,
	},
	model.OrderStatusFixRequested: {
		model.OrderStatusReceivedBack,
	},
	model.OrderStatusReceivedBack: {
		model.OrderStatusPackingReceivedBack,
		model.OrderStatusResentToProduction,
	},
	model.OrderStatusPackingReceivedBack: {
		model.OrderStatusResentToProduction,
		model.OrderStatusStored,
		model.OrderStatusResentToCustomer,
	},
	model.OrderStatusResentToProduction: {
		model.OrderStatusAwaitingReprod,
		model.OrderStatusFramed,
	},
	model.OrderStatusAwaitingReprod: {
		model.OrderStatusFramed,
		model.OrderStatusProcessing,
	},
	model.OrderStatusResentToCustomer: {
		model.OrderStatusAwaitingDispatch,
	},
}

var printingTransitions = map[model.PrintingStatus][]model.PrintingStatus{
	model.PrintingStatusNotPrinted: {
		model.PrintingStatusQueued,
		model.PrintingStatusPrinting,
		model.PrintingStatusPrinted,
	},
	model.PrintingStatusQueued: {
		model.PrintingStatusPrinting,
		model.PrintingStatusPrinted,
	},
	model.PrintingStatusPrinting: {
		model.PrintingStatusPrinted,
	},
	model.PrintingStatusPrinted: {
		model.PrintingStatusReceivedByProduction,
		model.PrintingStatusReceivedByPacking,
		model.PrintingStatusReprintRequested,
	},
	model.PrintingStatusReceivedByProduction: {
		model.PrintingStatusReprintRequested,
	},
	model.PrintingStatusReceivedByPacking: {
		model.PrintingStatusReprintRequested,
	},
	model.PrintingStatusReprintRequested: {
		model.PrintingStatusAwaitingReprint,
	},
	model.PrintingStatusAwaitingReprint: {
		model.PrintingStatusPrinting,
		model.PrintingStatusPrinted,
	},
}

var cuttingTransitions = map[model.CuttingStatus][]model.CuttingStatus{
	model.CuttingStatusNotCut: {
		model.CuttingStatusQueued,
		model.CuttingStatusCutting,
		model.CuttingStatusCut,
	},
	model.CuttingStatusQueued: {
		model.CuttingStatusCutting,
		model.CuttingStatusCut,
	},
	model.CuttingStatusCutting: {
		model.CuttingStatusCut,
	},
	model.CuttingStatusCut: {
		model.CuttingStatusRecutRequested,
	},
	model.CuttingStatusRecutRequested: {
		model.CuttingStatusAwaitingRecut,
	},
	model.CuttingStatusAwaitingRecut: {
		model.CuttingStatusCutting,
		model.CuttingStatusCut,
	},
}

// CanTransition reports whether the order status edge is whitelisted.
func CanTransition(current, next model.OrderStatus) bool {
	for _, allowed := range orderTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the order to the next status and appends a history
// entry. Edges outside the whitelist fail with ErrInvalidTransition and
// leave the order untouched.
func Transition(order *model.Order, next model.OrderStatus, actor, note string) error {
	if !CanTransition(order.Status, next) {
		return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, order.Status, next)
	}
	order.Status = next
	order.AppendHistory(next, actor, note)
	return nil
}

// CanTransitionPrinting reports whether the printing sub-status edge is valid.
func CanTransitionPrinting(current, next model.PrintingStatus) bool {
	for _, allowed := range printingTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionPrinting advances the printing sub-status.
func TransitionPrinting(order *model.Order, next model.PrintingStatus) error {
	if !CanTransitionPrinting(order.PrintingStatus, next) {
		return fmt.Errorf("%w: printing %s -> %s", domainErrors.ErrInvalidTransition, order.PrintingStatus, next)
	}
	order.PrintingStatus = next
	return nil
}

// CanTransitionCutting reports whether the cutting sub-status edge is valid.
func CanTransitionCutting(current, next model.CuttingStatus) bool {
	for _, allowed := range cuttingTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionCutting advances the frame-cutting sub-status.
func TransitionCutting(order *model.Order, next model.CuttingStatus) error {
	if !CanTransitionCutting(order.CuttingStatus, next) {
		return fmt.Errorf("%w: cutting %s -> %s", domainErrors.ErrInvalidTransition, order.CuttingStatus, next)
	}
	order.CuttingStatus = next
	return nil
}
