package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/stockmaster/backend/internal/application/inventory"
)

// StockHandler handles stock query, override and reporting endpoints
type StockHandler struct {
	BaseHandler
	stockService *invapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *invapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	var filter invapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	stocks, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, stocks, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByKey handles GET /stock/item. The stock record is addressed by its
// (product, warehouse, location) key triple passed as query parameters.
func (h *StockHandler) GetByKey(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id")
		return
	}
	locationID, err := uuid.Parse(c.Query("location_id"))
	if err != nil {
		h.BadRequest(c, "Invalid location_id")
		return
	}

	response, err := h.stockService.GetByKey(c.Request.Context(), productID, warehouseID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Override handles POST /stock/override, the administrative create-or-update
// that bypasses the ledger
func (h *StockHandler) Override(c *gin.Context) {
	var req invapp.OverrideStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.stockService.Override(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Summary handles GET /stock/summary
func (h *StockHandler) Summary(c *gin.Context) {
	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse_id")
			return
		}
		warehouseID = &id
	}

	response, err := h.stockService.Summary(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// LowStock handles GET /stock/low-stock
func (h *StockHandler) LowStock(c *gin.Context) {
	response, err := h.stockService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// ListLedger handles GET /ledger
func (h *StockHandler) ListLedger(c *gin.Context) {
	var filter invapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, total, err := h.stockService.ListLedger(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// ExportCSV handles GET /export/stock. The export streams the full filtered
// stock listing, not one page.
func (h *StockHandler) ExportCSV(c *gin.Context) {
	var filter invapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	data, err := h.stockService.ExportStockCSV(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("stock_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
