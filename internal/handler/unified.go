package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/service"
)

// UnifiedHandler handles unified GPS view and daily summary requests
type UnifiedHandler struct {
	unified *service.UnifiedService
}

// NewUnifiedHandler creates a new unified view handler
func NewUnifiedHandler(unified *service.UnifiedService) *UnifiedHandler {
	return &UnifiedHandler{unified: unified}
}

type unifiedListQuery struct {
	Source   string `form:"source"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit,default=100" binding:"min=1,max=5000"`
	Offset   int    `form:"offset" binding:"min=0"`
	Order    string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

// List returns the merged OwnTracks + Garmin GPS view
// @Summary List unified GPS points
// @Description Query the unified view combining OwnTracks and Garmin data
// @Tags Unified GPS
// @Produce json
// @Param source query string false "Filter by source: owntracks or garmin"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(100)
// @Param offset query int false "Offset" default(0)
// @Param order query string false "Sort order (asc/desc)" default(desc)
// @Success 200 {object} model.PaginatedResponse[model.UnifiedGpsPoint]
// @Failure 400 {object} model.ErrorResponse
// @Router /gps/unified [get]
func (h *UnifiedHandler) List(c *gin.Context) {
	var q unifiedListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.unified.List(c.Request.Context(), service.UnifiedListParams{
		Source:   q.Source,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Order:    q.Order,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, model.PaginatedResponse[model.UnifiedGpsPoint]{
		Items:  items,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

type dailySummaryQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit,default=30" binding:"min=1,max=365"`
}

// DailySummary returns per-day aggregated activity statistics
// @Summary Daily activity summary
// @Description Query per-day aggregate statistics joining location and Garmin data
// @Tags Unified GPS
// @Produce json
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(30)
// @Success 200 {array} model.DailyActivitySummary
// @Failure 400 {object} model.ErrorResponse
// @Router /gps/daily-summary [get]
func (h *UnifiedHandler) DailySummary(c *gin.Context) {
	var q dailySummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.unified.DailySummary(c.Request.Context(), q.DateFrom, q.DateTo, q.Limit)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, summaries)
}
