package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/service"
)

// LocationHandler handles OwnTracks location requests
type LocationHandler struct {
	locations *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locations *service.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

type locationListQuery struct {
	DeviceID string `form:"device_id"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit,default=50" binding:"min=1,max=1000"`
	Offset   int    `form:"offset" binding:"min=0"`
	Sort     string `form:"sort,default=created_at"`
	Order    string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

// List returns OwnTracks locations with filtering and pagination
// @Summary List locations
// @Description List OwnTracks locations with filtering and pagination
// @Tags Locations
// @Produce json
// @Param device_id query string false "Filter by device ID"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Param sort query string false "Sort column" default(created_at)
// @Param order query string false "Sort order (asc/desc)" default(desc)
// @Success 200 {object} model.PaginatedResponse[model.Location]
// @Failure 400 {object} model.ErrorResponse
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var q locationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.locations.List(c.Request.Context(), service.LocationListParams{
		DeviceID: q.DeviceID,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Sort:     q.Sort,
		Order:    q.Order,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, model.PaginatedResponse[model.Location]{
		Items:  items,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

// Devices returns all distinct device IDs
// @Summary List devices
// @Description List all distinct device IDs
// @Tags Locations
// @Produce json
// @Success 200 {array} model.DeviceInfo
// @Router /locations/devices [get]
func (h *LocationHandler) Devices(c *gin.Context) {
	devices, err := h.locations.Devices(c.Request.Context())
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, devices)
}

type locationCountQuery struct {
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	DeviceID string `form:"device_id"`
}

// Count returns the total location count with optional filters
// @Summary Count locations
// @Description Get total location count with optional filters
// @Tags Locations
// @Produce json
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param device_id query string false "Filter by device ID"
// @Success 200 {object} model.LocationCount
// @Failure 400 {object} model.ErrorResponse
// @Router /locations/count [get]
func (h *LocationHandler) Count(c *gin.Context) {
	var q locationCountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.locations.Count(c.Request.Context(), q.Date, q.DeviceID)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, count)
}

// Get returns a single location by ID, including the raw payload
// @Summary Get location
// @Description Get a single location by ID, including raw payload
// @Tags Locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} model.LocationDetail
// @Failure 404 {object} model.ErrorResponse
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid id")
		return
	}

	location, err := h.locations.Get(c.Request.Context(), id)
	if err != nil {
		respondReadError(c, err, "Location not found")
		return
	}
	c.JSON(http.StatusOK, location)
}
