package handler

import (
	"github.com/gin-gonic/gin"
	invapp "github.com/stockmaster/backend/internal/application/inventory"
	"github.com/stockmaster/backend/internal/interfaces/http/dto"
)

// TransferHandler handles internal transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *invapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *invapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create handles POST /transfers
func (h *TransferHandler) Create(c *gin.Context) {
	var req invapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.transferService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Get handles GET /transfers/:id
func (h *TransferHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	response, err := h.transferService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List handles GET /transfers
func (h *TransferHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter = filter.WithFilter("status", status)
	}

	transfers, total, err := h.transferService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transfers, total, filter.Page, filter.PageSize)
}

// Submit handles POST /transfers/:id/submit
func (h *TransferHandler) Submit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	response, err := h.transferService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Complete handles POST /transfers/:id/complete, the terminal transition
// moving stock from source to destination
func (h *TransferHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	response, err := h.transferService.Complete(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Cancel handles POST /transfers/:id/cancel
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	response, err := h.transferService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /transfers/:id
func (h *TransferHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	if err := h.transferService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
