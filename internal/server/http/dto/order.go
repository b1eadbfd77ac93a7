package dto

import (
	"time"

	"github.com/khanhng/orderflow/internal/capability"
	"github.com/khanhng/orderflow/internal/domain/model"
)

// PaintingPayload describes one submitted line item. A zero ID creates a
// new item; a known ID updates it; stored items missing from the submission
// are removed.
type PaintingPayload struct {
	ID        int64    `json:"id"`
	Type      string   `json:"type"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	FrameType string   `json:"frameType"`
	Quantity  int      `json:"quantity"`
	Note      string   `json:"note"`
	Mentions  []string `json:"mentions"`
	MediaURLs []string `json:"mediaUrls"`
}

// ProfitSharePayload describes one profit-sharing entry.
type ProfitSharePayload struct {
	Participant string `json:"participant"`
	Percent     int    `json:"percent"`
}

// OrderPayload is the full create/edit payload for an order.
type OrderPayload struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	Type            string `json:"type"`

	ItemPrice       int64  `json:"itemPrice"`
	ConstructionFee int64  `json:"constructionFee"`
	DesignFee       int64  `json:"designFee"`
	ShippingFee     int64  `json:"shippingFee"`
	ExtraFee        int64  `json:"extraFee"`
	ExtraFeeNote    string `json:"extraFeeNote"`
	VATIncluded     bool   `json:"vatIncluded"`
	Deposit         int64  `json:"deposit"`
	Total           int64  `json:"total"`

	CustomerPaysShipping bool   `json:"customerPaysShipping"`
	ShippingMethod       string `json:"shippingMethod"`
	TrackingCode         string `json:"trackingCode"`
	CarrierNote          string `json:"carrierNote"`
	CarrierCost          int64  `json:"carrierCost"`

	Items        []PaintingPayload    `json:"items"`
	ProfitShares []ProfitSharePayload `json:"profitShares"`
}

// ToSnapshot converts the payload into a domain snapshot.
func (p OrderPayload) ToSnapshot() model.OrderSnapshot {
	snap := model.OrderSnapshot{
		CustomerName:         p.CustomerName,
		CustomerPhone:        p.CustomerPhone,
		CustomerAddress:      p.CustomerAddress,
		Type:                 model.OrderType(p.Type),
		ItemPrice:            p.ItemPrice,
		ConstructionFee:      p.ConstructionFee,
		DesignFee:            p.DesignFee,
		ShippingFee:          p.ShippingFee,
		ExtraFee:             p.ExtraFee,
		ExtraFeeNote:         p.ExtraFeeNote,
		VATIncluded:          p.VATIncluded,
		Deposit:              p.Deposit,
		Total:                p.Total,
		CustomerPaysShipping: p.CustomerPaysShipping,
		ShippingMethod:       model.ShippingMethod(p.ShippingMethod),
		TrackingCode:         p.TrackingCode,
		CarrierNote:          p.CarrierNote,
		CarrierCost:          p.CarrierCost,
	}
	for _, item := range p.Items {
		snap.Items = append(snap.Items, model.Painting{
			ID:        item.ID,
			Type:      model.PaintingType(item.Type),
			Width:     item.Width,
			Height:    item.Height,
			FrameType: item.FrameType,
			Quantity:  item.Quantity,
			Note:      item.Note,
			Mentions:  item.Mentions,
			MediaURLs: item.MediaURLs,
		})
	}
	for _, share := range p.ProfitShares {
		snap.ProfitShares = append(snap.ProfitShares, model.ProfitShare{
			Participant: share.Participant,
			Percent:     share.Percent,
		})
	}
	return snap
}

// StatusRequest drives a direct status transition.
type StatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// AcceptRequest names the role claiming its next step.
type AcceptRequest struct {
	Role string `json:"role"`
}

// CompleteRequest carries step-specific completion data.
type CompleteRequest struct {
	Role           string `json:"role"`
	Note           string `json:"note"`
	ActualReceived int64  `json:"actualReceived"`
	ShippingMethod string `json:"shippingMethod"`
	TrackingCode   string `json:"trackingCode"`
	CarrierNote    string `json:"carrierNote"`
	CarrierCost    int64  `json:"carrierCost"`
}

// ReceiveRequest selects the item category being received.
type ReceiveRequest struct {
	Category string `json:"category"`
}

// ReworkRequest names the rework branch and its reason.
type ReworkRequest struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// ProductionRequest carries the reason for sending an order back.
type ProductionRequest struct {
	Reason string `json:"reason"`
}

// SecretRequest gates destructive operations.
type SecretRequest struct {
	Secret string `json:"secret"`
}

// HistoryEntry is one status history record.
type HistoryEntry struct {
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderResponse is the read model of an order, with the derived cutting
// status and the caller's capability flags.
type OrderResponse struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	Type            string `json:"type"`

	Status         string `json:"status"`
	PrintingStatus string `json:"printingStatus"`
	CuttingStatus  string `json:"frameCuttingStatus"`

	ItemPrice       int64  `json:"itemPrice"`
	ConstructionFee int64  `json:"constructionFee"`
	DesignFee       int64  `json:"designFee"`
	ShippingFee     int64  `json:"shippingFee"`
	ExtraFee        int64  `json:"extraFee"`
	ExtraFeeNote    string `json:"extraFeeNote"`
	VATIncluded     bool   `json:"vatIncluded"`
	VAT             int64  `json:"vat"`
	Deposit         int64  `json:"deposit"`
	Total           int64  `json:"total"`
	COD             int64  `json:"cod"`
	ActualReceived  int64  `json:"actualReceived"`

	CustomerPaysShipping bool   `json:"customerPaysShipping"`
	ShippingMethod       string `json:"shippingMethod"`
	TrackingCode         string `json:"trackingCode"`
	CarrierNote          string `json:"carrierNote"`
	CarrierCost          int64  `json:"carrierCost"`

	Items        []model.Painting        `json:"items"`
	History      []HistoryEntry          `json:"history"`
	ProfitShares []model.ProfitShare     `json:"profitShares"`
	Assignments  []model.Assignment      `json:"assignments"`
	Capabilities capability.Capabilities `json:"capabilities"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToOrderResponse builds the read model for one order and caller role set.
func ToOrderResponse(order *model.Order, roles model.RoleSet) OrderResponse {
	resp := OrderResponse{
		ID:                   order.ID,
		Code:                 order.Code,
		CustomerName:         order.CustomerName,
		CustomerPhone:        order.CustomerPhone,
		CustomerAddress:      order.CustomerAddress,
		Type:                 string(order.Type),
		Status:               string(order.Status),
		PrintingStatus:       string(order.PrintingStatus),
		CuttingStatus:        string(order.EffectiveCuttingStatus()),
		ItemPrice:            order.ItemPrice,
		ConstructionFee:      order.ConstructionFee,
		DesignFee:            order.DesignFee,
		ShippingFee:          order.ShippingFee,
		ExtraFee:             order.ExtraFee,
		ExtraFeeNote:         order.ExtraFeeNote,
		VATIncluded:          order.VATIncluded,
		VAT:                  order.VAT,
		Deposit:              order.Deposit,
		Total:                order.Total,
		COD:                  order.COD,
		ActualReceived:       order.ActualReceived,
		CustomerPaysShipping: order.CustomerPaysShipping,
		ShippingMethod:       string(order.ShippingMethod),
		TrackingCode:         order.TrackingCode,
		CarrierNote:          order.CarrierNote,
		CarrierCost:          order.CarrierCost,
		Items:                order.Items,
		ProfitShares:         order.ProfitShares,
		Assignments:          order.Assignments,
		Capabilities:         capability.Resolve(order, roles),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
	for _, h := range order.History {
		resp.History = append(resp.History, HistoryEntry{
			Status:    string(h.Status),
			Actor:     h.Actor,
			Note:      h.Note,
			CreatedAt: h.CreatedAt,
		})
	}
	return resp
}
