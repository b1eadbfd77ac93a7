package dto

import (
	"time"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// RejectRequest carries the reviewer's rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// DraftResponse is the read model of a pending financial edit proposal.
type DraftResponse struct {
	ID           int64               `json:"id"`
	OrderID      int64               `json:"orderId"`
	ProposerName string              `json:"proposerName"`
	Status       string              `json:"status"`
	Original     model.OrderSnapshot `json:"original"`
	Proposed     model.OrderSnapshot `json:"proposed"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToDraftResponse builds the draft read model.
func ToDraftResponse(draft *model.OrderDraft) DraftResponse {
	return DraftResponse{
		ID:           draft.ID,
		OrderID:      draft.OrderID,
		ProposerName: draft.ProposerName,
		Status:       string(draft.Status),
		Original:     draft.Original,
		Proposed:     draft.Proposed,
		CreatedAt:    draft.CreatedAt,
	}
}
