package lifecycle

import "github.com/khanhng/orderflow/internal/domain/model"

// autoAdvanceNote marks history entries produced by aggregation rather than
// a direct user action.
const autoAdvanceNote = "auto-advance from item aggregation"

// AggregatePrinting derives the order's printing status from its items and
// applies any auto-advance the aggregation implies. When all items become
// printed while the order is still NEW the order moves to PROCESSING with a
// history entry attributing the auto-advance to the triggering actor.
func AggregatePrinting(order *model.Order, actor string) {
	total := len(order.Items)
	if total == 0 {
		return
	}

	printed := 0
	for i := range order.Items {
		if order.Items[i].IsPrinted {
			printed++
		}
	}

	switch {
	case printed == 0:
		// No item printed yet: status unchanged.
		return
	case printed < total:
		if CanTransitionPrinting(order.PrintingStatus, model.PrintingStatusPrinting) {
			order.PrintingStatus = model.PrintingStatusPrinting
		}
	default:
		if CanTransitionPrinting(order.PrintingStatus, model.PrintingStatusPrinted) {
			order.PrintingStatus = model.PrintingStatusPrinted
		}
		if order.Status == model.OrderStatusNew {
			_ = Transition(order, model.OrderStatusProcessing, actor, autoAdvanceNote)
		}
	}
}

// AggregateReceipt derives receipt-driven state from the items. Once every
// framing-required item is received by production the printing status becomes
// RECEIVED_BY_PRODUCTION and the order advances to AWAITING_PRODUCTION when
// the edge is legal. An order with no framing items advances straight to
// AWAITING_PACKING once every item is received by packing.
func AggregateReceipt(order *model.Order, actor string) {
	if len(order.Items) == 0 {
		return
	}

	framing := 0
	framingReceived := 0
	packingReceived := 0
	for i := range order.Items {
		it := &order.Items[i]
		if it.RequiresFraming() {
			framing++
			if it.ReceivedByProduction {
				framingReceived++
			}
		}
		if it.ReceivedByPacking {
			packingReceived++
		}
	}

	if framing > 0 {
		if framingReceived == framing {
			if CanTransitionPrinting(order.PrintingStatus, model.PrintingStatusReceivedByProduction) {
				order.PrintingStatus = model.PrintingStatusReceivedByProduction
			}
			if CanTransition(order.Status, model.OrderStatusAwaitingProduction) {
				_ = Transition(order, model.OrderStatusAwaitingProduction, actor, autoAdvanceNote)
			}
		}
		return
	}

	if packingReceived == len(order.Items) {
		if CanTransitionPrinting(order.PrintingStatus, model.PrintingStatusReceivedByPacking) {
			order.PrintingStatus = model.PrintingStatusReceivedByPacking
		}
		if CanTransition(order.Status, model.OrderStatusAwaitingPacking) {
			_ = Transition(order, model.OrderStatusAwaitingPacking, actor, autoAdvanceNote)
		}
	}
}

// AggregateCutting derives the cutting status from the framed items'
// progress recorded on the order. Orders without cutting-required items keep
// their stored value; the read side reports NOT_APPLICABLE for them.
func AggregateCutting(order *model.Order) {
	if !order.RequiresCutting() {
		return
	}
	if order.CuttingStatus == "" {
		order.CuttingStatus = model.CuttingStatusNotCut
	}
}
