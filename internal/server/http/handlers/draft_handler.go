package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanhng/orderflow/internal/server/http/dto"
)

// DraftHandler serves the financial-edit review endpoints.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

// Pending handles GET /api/orders/:id/draft.
func (h *DraftHandler) Pending(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	draft, err := h.facade.PendingDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToDraftResponse(draft)))
}

// Approve handles PATCH /api/orders/:id/draft/approve.
func (h *DraftHandler) Approve(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.ApproveDraft(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Reject handles PATCH /api/orders/:id/draft/reject.
func (h *DraftHandler) Reject(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.RejectDraft(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}
