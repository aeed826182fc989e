package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/stockmaster/backend/internal/application/trade"
	"github.com/stockmaster/backend/internal/interfaces/http/dto"
)

// ReceiptHandler handles inbound receipt endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *tradeapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *tradeapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles POST /receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req tradeapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Update handles PUT /receipts/:id
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req tradeapp.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.receiptService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Get handles GET /receipts/:id
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	response, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List handles GET /receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter = filter.WithFilter("status", status)
	}
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		filter = filter.WithFilter("warehouse_id", warehouseID)
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// Submit handles POST /receipts/:id/submit
func (h *ReceiptHandler) Submit(c *gin.Context) {
	h.transition(c, h.receiptService.Submit)
}

// MarkReady handles POST /receipts/:id/ready
func (h *ReceiptHandler) MarkReady(c *gin.Context) {
	h.transition(c, h.receiptService.MarkReady)
}

// Cancel handles POST /receipts/:id/cancel
func (h *ReceiptHandler) Cancel(c *gin.Context) {
	h.transition(c, h.receiptService.Cancel)
}

// Validate handles POST /receipts/:id/validate, the terminal transition
// that books all items into stock
func (h *ReceiptHandler) Validate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	response, err := h.receiptService.Validate(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /receipts/:id
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ReceiptHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*tradeapp.ReceiptResponse, error)) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	response, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}
