package model

import "time"

// DraftStatus describes the review state of a financial edit proposal.
type DraftStatus string

const (
	DraftStatusPending  DraftStatus = "PENDING"
	DraftStatusApproved DraftStatus = "APPROVED"
	DraftStatusRejected DraftStatus = "REJECTED"
)

// OrderSnapshot captures every mutable order field, including the item list
// and profit shares. Drafts hold two: the original and the proposed.
type OrderSnapshot struct {
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	Type            OrderType `json:"type"`

	ItemPrice       int64  `json:"itemPrice"`
	ConstructionFee int64  `json:"constructionFee"`
	DesignFee       int64  `json:"designFee"`
	ShippingFee     int64  `json:"shippingFee"`
	ExtraFee        int64  `json:"extraFee"`
	ExtraFeeNote    string `json:"extraFeeNote"`
	VATIncluded     bool   `json:"vatIncluded"`
	Deposit         int64  `json:"deposit"`
	Total           int64  `json:"total"`

	CustomerPaysShipping bool           `json:"customerPaysShipping"`
	ShippingMethod       ShippingMethod `json:"shippingMethod"`
	TrackingCode         string         `json:"trackingCode"`
	CarrierNote          string         `json:"carrierNote"`
	CarrierCost          int64          `json:"carrierCost"`

	Items        []Painting    `json:"items"`
	ProfitShares []ProfitShare `json:"profitShares"`
}

// Snapshot copies the order's mutable fields into a standalone record.
func (o *Order) Snapshot() OrderSnapshot {
	snap := OrderSnapshot{
		CustomerName:         o.CustomerName,
		CustomerPhone:        o.CustomerPhone,
		CustomerAddress:      o.CustomerAddress,
		Type:                 o.Type,
		ItemPrice:            o.ItemPrice,
		ConstructionFee:      o.ConstructionFee,
		DesignFee:            o.DesignFee,
		ShippingFee:          o.ShippingFee,
		ExtraFee:             o.ExtraFee,
		ExtraFeeNote:         o.ExtraFeeNote,
		VATIncluded:          o.VATIncluded,
		Deposit:              o.Deposit,
		Total:                o.Total,
		CustomerPaysShipping: o.CustomerPaysShipping,
		ShippingMethod:       o.ShippingMethod,
		TrackingCode:         o.TrackingCode,
		CarrierNote:          o.CarrierNote,
		CarrierCost:          o.CarrierCost,
	}
	snap.Items = append([]Painting(nil), o.Items...)
	snap.ProfitShares = append([]ProfitShare(nil), o.ProfitShares...)
	return snap
}

// ApplySnapshot replays every snapshot field onto the order. The item list
// is reconciled by ID: update-in-place, create-if-absent, delete-if-missing,
// so item identity and sub-status survive edits.
func (o *Order) ApplySnapshot(snap OrderSnapshot) {
	o.CustomerName = snap.CustomerName
	o.CustomerPhone = snap.CustomerPhone
	o.CustomerAddress = snap.CustomerAddress
	o.Type = snap.Type
	o.ItemPrice = snap.ItemPrice
	o.ConstructionFee = snap.ConstructionFee
	o.DesignFee = snap.DesignFee
	o.ShippingFee = snap.ShippingFee
	o.ExtraFee = snap.ExtraFee
	o.ExtraFeeNote = snap.ExtraFeeNote
	o.VATIncluded = snap.VATIncluded
	o.Deposit = snap.Deposit
	o.Total = snap.Total
	o.CustomerPaysShipping = snap.CustomerPaysShipping
	o.ShippingMethod = snap.ShippingMethod
	o.TrackingCode = snap.TrackingCode
	o.CarrierNote = snap.CarrierNote
	o.CarrierCost = snap.CarrierCost
	o.Items = ReconcileItems(o.Items, snap.Items)
	o.ProfitShares = append([]ProfitShare(nil), snap.ProfitShares...)
}

// ReconcileItems merges submitted items into the existing list. Submitted
// items with a matching ID update the stored descriptive fields in place,
// keeping printing/receipt sub-state; items without an ID are created; stored
// items absent from the submission are dropped.
func ReconcileItems(existing, submitted []Painting) []Painting {
	byID := make(map[int64]Painting, len(existing))
	for _, it := range existing {
		byID[it.ID] = it
	}

	result := make([]Painting, 0, len(submitted))
	for _, in := range submitted {
		if current, ok := byID[in.ID]; ok && in.ID != 0 {
			current.Type = in.Type
			current.Width = in.Width
			current.Height = in.Height
			current.FrameType = in.FrameType
			current.Quantity = in.Quantity
			current.Note = in.Note
			current.Mentions = in.Mentions
			current.MediaURLs = in.MediaURLs
			result = append(result, current)
			continue
		}
		in.ID = 0
		result = append(result, in)
	}
	return result
}

// OrderDraft shadows an order with a pending financial edit proposal. At
// most one pending draft exists per order.
type OrderDraft struct {
	ID           int64
	OrderID      int64
	ProposedBy   int64
	ProposerName string
	ReviewedBy   *int64
	Status       DraftStatus
	Original     OrderSnapshot
	Proposed     OrderSnapshot
	ReviewerNote string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
