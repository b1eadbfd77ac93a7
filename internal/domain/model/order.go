package model

import "time"

// OrderStatus describes the overall fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusNew                 OrderStatus = "NEW"
	OrderStatusProcessing          OrderStatus = "PROCESSING"
	OrderStatusAwaitingProduction  OrderStatus = "AWAITING_PRODUCTION"
	OrderStatusFramed              OrderStatus = "FRAMED"
	OrderStatusAwaitingPacking     OrderStatus = "AWAITING_PACKING"
	OrderStatusPacked              OrderStatus = "PACKED"
	OrderStatusAwaitingDispatch    OrderStatus = "AWAITING_DISPATCH"
	OrderStatusSent                OrderStatus = "SENT"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusCustomerReturned    OrderStatus = "CUSTOMER_RETURNED"
	OrderStatusFixRequested        OrderStatus = "FIX_REQUESTED"
	OrderStatusReceivedBack        OrderStatus = "RECEIVED_BACK"
	OrderStatusPackingReceivedBack OrderStatus = "PACKING_RECEIVED_BACK"
	OrderStatusResentToProduction  OrderStatus = "RESENT_TO_PRODUCTION"
	OrderStatusAwaitingReprod      OrderStatus = "AWAITING_REPRODUCTION"
	OrderStatusResentToCustomer    OrderStatus = "RESENT_TO_CUSTOMER"
	OrderStatusStored              OrderStatus = "STORED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
)

// PrintingStatus tracks aggregate printing progress across an order's items.
type PrintingStatus string

const (
	PrintingStatusNotPrinted           PrintingStatus = "NOT_PRINTED"
	PrintingStatusQueued               PrintingStatus = "QUEUED"
	PrintingStatusPrinting             PrintingStatus = "PRINTING"
	PrintingStatusPrinted              PrintingStatus = "PRINTED"
	PrintingStatusReceivedByProduction PrintingStatus = "RECEIVED_BY_PRODUCTION"
	PrintingStatusReceivedByPacking    PrintingStatus = "RECEIVED_BY_PACKING"
	PrintingStatusReprintRequested     PrintingStatus = "REPRINT_REQUESTED"
	PrintingStatusAwaitingReprint      PrintingStatus = "AWAITING_REPRINT"
)

// CuttingStatus tracks aggregate frame-cutting progress.
type CuttingStatus string

const (
	CuttingStatusNotCut         CuttingStatus = "NOT_CUT"
	CuttingStatusQueued         CuttingStatus = "QUEUED"
	CuttingStatusCutting        CuttingStatus = "CUTTING"
	CuttingStatusCut            CuttingStatus = "CUT"
	CuttingStatusRecutRequested CuttingStatus = "RECUT_REQUESTED"
	CuttingStatusAwaitingRecut  CuttingStatus = "AWAITING_RECUT"
	// CuttingStatusNotApplicable is derived at read time for orders with no
	// frame-cutting items; it is never persisted.
	CuttingStatusNotApplicable CuttingStatus = "NOT_APPLICABLE"
)

// OrderType distinguishes in-shop orders from marketplace channels.
type OrderType string

const (
	OrderTypeNormal OrderType = "NORMAL"
	OrderTypeUrgent OrderType = "URGENT"
	OrderTypeShopee OrderType = "SHOPEE"
	OrderTypeLazada OrderType = "LAZADA"
)

// IsMarketplace reports whether the channel supplies a direct total.
func (t OrderType) IsMarketplace() bool {
	return t == OrderTypeShopee || t == OrderTypeLazada
}

// ShippingMethod tags how a packed order leaves the shop.
type ShippingMethod string

const (
	ShippingMethodInternal ShippingMethod = "INTERNAL"
	ShippingMethodCarrier  ShippingMethod = "CARRIER"
)

// StatusChange is one append-only history entry. Entries are ordered by
// occurrence and never rewritten.
type StatusChange struct {
	ID        int64
	OrderID   int64
	Status    OrderStatus
	Actor     string
	Note      string
	CreatedAt time.Time
}

// ProfitShare assigns a participant a percentage of the item price.
type ProfitShare struct {
	Participant string `json:"participant"`
	Percent     int    `json:"percent"`
	Amount      int64  `json:"amount"`
}

// Assignment records a worker claiming a fulfillment step.
type Assignment struct {
	Worker     string    `json:"worker"`
	Role       Role      `json:"role"`
	AssignedAt time.Time `json:"assignedAt"`
}

// Order is the aggregate root for one customer job. Monetary amounts are VND.
type Order struct {
	ID              int64
	Code            string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Type            OrderType

	Status         OrderStatus
	PrintingStatus PrintingStatus
	CuttingStatus  CuttingStatus

	ItemPrice       int64
	ConstructionFee int64
	DesignFee       int64
	ShippingFee     int64
	ExtraFee        int64
	ExtraFeeNote    string
	VATIncluded     bool
	VAT             int64
	Deposit         int64
	Total           int64
	COD             int64
	ActualReceived  int64

	CustomerPaysShipping bool
	ShippingMethod       ShippingMethod
	TrackingCode         string
	CarrierNote          string
	CarrierCost          int64

	Items        []Painting
	History      []StatusChange
	ProfitShares []ProfitShare
	Assignments  []Assignment

	CreatedBy int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppendHistory adds an immutable history entry for the given status.
func (o *Order) AppendHistory(status OrderStatus, actor, note string) {
	o.History = append(o.History, StatusChange{
		OrderID:   o.ID,
		Status:    status,
		Actor:     actor,
		Note:      note,
		CreatedAt: time.Now(),
	})
}

// RequiresCutting reports whether any item needs frame cutting.
func (o *Order) RequiresCutting() bool {
	for i := range o.Items {
		if o.Items[i].RequiresCutting() {
			return true
		}
	}
	return false
}

// RequiresFraming reports whether any item needs a frame.
func (o *Order) RequiresFraming() bool {
	for i := range o.Items {
		if o.Items[i].RequiresFraming() {
			return true
		}
	}
	return false
}

// EffectiveCuttingStatus is the read-side cutting status: orders with no
// cutting-required items always report NOT_APPLICABLE regardless of the
// stored value.
func (o *Order) EffectiveCuttingStatus() CuttingStatus {
	if !o.RequiresCutting() {
		return CuttingStatusNotApplicable
	}
	return o.CuttingStatus
}
