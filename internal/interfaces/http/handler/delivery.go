package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/stockmaster/backend/internal/application/trade"
	"github.com/stockmaster/backend/internal/interfaces/http/dto"
)

// DeliveryHandler handles outbound delivery order endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *tradeapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *tradeapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create handles POST /deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req tradeapp.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.deliveryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Update handles PUT /deliveries/:id
func (h *DeliveryHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req tradeapp.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.deliveryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Get handles GET /deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	response, err := h.deliveryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List handles GET /deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter = filter.WithFilter("status", status)
	}

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, deliveries, total, filter.Page, filter.PageSize)
}

// Pick handles POST /deliveries/:id/pick
func (h *DeliveryHandler) Pick(c *gin.Context) {
	h.progress(c, h.deliveryService.UpdatePicking)
}

// Pack handles POST /deliveries/:id/pack
func (h *DeliveryHandler) Pack(c *gin.Context) {
	h.progress(c, h.deliveryService.UpdatePacking)
}

// Complete handles POST /deliveries/:id/complete, the terminal transition
// that deducts every line from stock
func (h *DeliveryHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CompleteDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.deliveryService.Complete(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /deliveries/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *DeliveryHandler) progress(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, req tradeapp.DeliveryProgressRequest) (*tradeapp.DeliveryResponse, error)) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req tradeapp.DeliveryProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := fn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}
