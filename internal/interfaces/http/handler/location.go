package handler

import (
	"github.com/gin-gonic/gin"
	warehouseapp "github.com/stockmaster/backend/internal/application/warehouse"
	"github.com/stockmaster/backend/internal/interfaces/http/dto"
)

// LocationHandler handles location endpoints, nested under warehouses for
// create and list
type LocationHandler struct {
	BaseHandler
	locationService *warehouseapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *warehouseapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create handles POST /warehouses/:id/locations
func (h *LocationHandler) Create(c *gin.Context) {
	warehouseID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req warehouseapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.locationService.Create(c.Request.Context(), warehouseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListByWarehouse handles GET /warehouses/:id/locations
func (h *LocationHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()
	if locType := c.Query("type"); locType != "" {
		filter = filter.WithFilter("type", locType)
	}

	locations, total, err := h.locationService.ListByWarehouse(c.Request.Context(), warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}

// Update handles PUT /locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req warehouseapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.locationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Get handles GET /locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	response, err := h.locationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
