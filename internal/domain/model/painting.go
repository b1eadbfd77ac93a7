package model

import "time"

// PaintingType tags the physical construction of a line item.
type PaintingType string

const (
	PaintingTypeFlat      PaintingType = "FLAT"
	PaintingTypeGlass     PaintingType = "GLASS"
	PaintingTypeFramed    PaintingType = "FRAMED"
	PaintingTypeRound     PaintingType = "ROUND"
	PaintingTypePrintOnly PaintingType = "PRINT_ONLY"
)

// Painting is one unit of work within an order with its own printing and
// frame sub-state.
type Painting struct {
	ID        int64        `json:"id"`
	OrderID   int64        `json:"orderId"`
	Type      PaintingType `json:"type"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	FrameType string       `json:"frameType"`
	Quantity  int          `json:"quantity"`
	Note      string       `json:"note"`
	Mentions  []string     `json:"mentions"`
	MediaURLs []string     `json:"mediaUrls"`

	IsPrinted bool       `json:"isPrinted"`
	PrintedBy string     `json:"printedBy"`
	PrintedAt *time.Time `json:"printedAt"`

	ReceivedByProduction bool       `json:"receivedByProduction"`
	ProductionReceivedBy string     `json:"productionReceivedBy"`
	ProductionReceivedAt *time.Time `json:"productionReceivedAt"`

	ReceivedByPacking bool       `json:"receivedByPacking"`
	PackingReceivedBy string     `json:"packingReceivedBy"`
	PackingReceivedAt *time.Time `json:"packingReceivedAt"`
}

// RequiresFraming is true only for framed and round pieces.
func (p *Painting) RequiresFraming() bool {
	return p.Type == PaintingTypeFramed || p.Type == PaintingTypeRound
}

// RequiresCutting is true only for framed pieces.
func (p *Painting) RequiresCutting() bool {
	return p.Type == PaintingTypeFramed
}
