package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/server/http/dto"
	"github.com/khanhng/orderflow/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	actor := CurrentUser(c)

	var payload dto.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), actor, payload.ToSnapshot())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentUser(c)

	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, dto.ToOrderResponse(&orders[i], actor.Roles))
	}
	c.JSON(http.StatusOK, dto.OK(response))
}

// Update handles PATCH /api/orders/:id. Restricted editors touching
// financial fields get a pending draft back instead of a live update.
func (h *OrderHandler) Update(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var payload dto.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, draft, err := h.facade.UpdateOrder(c.Request.Context(), actor, id, payload.ToSnapshot())
	if err != nil {
		respondError(c, err)
		return
	}

	if draft != nil {
		c.JSON(http.StatusAccepted, dto.OK(dto.ToDraftResponse(draft)))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// ChangeStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.ChangeStatus(c.Request.Context(), actor, id, model.OrderStatus(req.Status), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Accept handles PATCH /api/orders/:id/accept.
func (h *OrderHandler) Accept(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.AcceptStep(c.Request.Context(), actor, id, model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Complete handles PATCH /api/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.CompleteStep(c.Request.Context(), actor, id, usecase.CompleteInput{
		Role:           model.Role(req.Role),
		Note:           req.Note,
		ActualReceived: req.ActualReceived,
		ShippingMethod: model.ShippingMethod(req.ShippingMethod),
		TrackingCode:   req.TrackingCode,
		CarrierNote:    req.CarrierNote,
		CarrierCost:    req.CarrierCost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Receive handles PATCH /api/orders/:id/receive.
func (h *OrderHandler) Receive(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.ReceiveItems(c.Request.Context(), actor, id, usecase.ReceiveCategory(req.Category))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Rework handles PATCH /api/orders/:id/rework.
func (h *OrderHandler) Rework(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.ReworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.RequestRework(c.Request.Context(), actor, id, usecase.ReworkKind(req.Kind), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// ProductionRequest handles PATCH /api/orders/:id/production-request.
func (h *OrderHandler) ProductionRequest(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.ProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	order, err := h.facade.SendBackToProduction(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToOrderResponse(order, actor.Roles)))
}

// Delete handles DELETE /api/orders/:id. The shared secret arrives as a
// query parameter because DELETE bodies are unreliable across proxies.
func (h *OrderHandler) Delete(c *gin.Context) {
	actor := CurrentUser(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), actor, id, c.Query("secret")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("order deleted"))
}

// Purge handles POST /api/orders/purge.
func (h *OrderHandler) Purge(c *gin.Context) {
	actor := CurrentUser(c)

	var req dto.SecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	purged, err := h.facade.PurgeOrders(c.Request.Context(), actor, req.Secret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"purged": purged}))
}
