package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/service"
)

// GarminHandler handles Garmin activity and track point requests
type GarminHandler struct {
	garmin *service.GarminService
}

// NewGarminHandler creates a new Garmin handler
func NewGarminHandler(garmin *service.GarminService) *GarminHandler {
	return &GarminHandler{garmin: garmin}
}

type activityListQuery struct {
	Sport    string `form:"sport"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit,default=50" binding:"min=1,max=1000"`
	Offset   int    `form:"offset" binding:"min=0"`
	Sort     string `form:"sort,default=start_time"`
	Order    string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

func (q activityListQuery) params() service.ActivityListParams {
	return service.ActivityListParams{
		Sport:    q.Sport,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Sort:     q.Sort,
		Order:    q.Order,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}

// ListActivities returns Garmin activities with filtering and pagination
// @Summary List activities
// @Description List Garmin activities with filtering and pagination
// @Tags Garmin
// @Produce json
// @Param sport query string false "Filter by sport type"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Param sort query string false "Sort column" default(start_time)
// @Param order query string false "Sort order (asc/desc)" default(desc)
// @Success 200 {object} model.PaginatedResponse[model.GarminActivity]
// @Failure 400 {object} model.ErrorResponse
// @Router /garmin/activities [get]
func (h *GarminHandler) ListActivities(c *gin.Context) {
	var q activityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.garmin.ListActivities(c.Request.Context(), q.params())
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, model.PaginatedResponse[model.GarminActivity]{
		Items:  items,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

// Sports returns distinct sport types with activity counts
// @Summary List sports
// @Description List distinct sport types with activity counts
// @Tags Garmin
// @Produce json
// @Success 200 {array} model.SportInfo
// @Router /garmin/sports [get]
func (h *GarminHandler) Sports(c *gin.Context) {
	sports, err := h.garmin.Sports(c.Request.Context())
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, sports)
}

// GetActivity returns a single activity by ID
// @Summary Get activity
// @Description Get a single Garmin activity by ID with track point count
// @Tags Garmin
// @Produce json
// @Param id path string true "Garmin activity ID"
// @Success 200 {object} model.GarminActivity
// @Failure 404 {object} model.ErrorResponse
// @Router /garmin/activities/{id} [get]
func (h *GarminHandler) GetActivity(c *gin.Context) {
	activity, err := h.garmin.GetActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err, "Activity not found")
		return
	}
	c.JSON(http.StatusOK, activity)
}

type trackListQuery struct {
	Limit    int      `form:"limit,default=500" binding:"min=1,max=25000"`
	Offset   int      `form:"offset" binding:"min=0"`
	Sort     string   `form:"sort,default=timestamp"`
	Order    string   `form:"order,default=asc" binding:"omitempty,oneof=asc desc"`
	Simplify *float64 `form:"simplify" binding:"omitempty,gte=0.000001,lte=0.01"`
}

// ListTrackPoints returns track points for an activity, paginated or
// simplified via Douglas-Peucker when a tolerance is supplied.
// @Summary List track points
// @Description List track points for an activity, deduplicated by timestamp. A simplify tolerance (degrees) returns the full simplified route, ignoring limit/offset.
// @Tags Garmin
// @Produce json
// @Param id path string true "Garmin activity ID"
// @Param limit query int false "Limit" default(500)
// @Param offset query int false "Offset" default(0)
// @Param sort query string false "Sort column" default(timestamp)
// @Param order query string false "Sort order (asc/desc)" default(asc)
// @Param simplify query number false "Douglas-Peucker tolerance in degrees (1e-6 to 1e-2)"
// @Success 200 {object} model.PaginatedResponse[model.GarminTrackPoint]
// @Failure 404 {object} model.ErrorResponse
// @Router /garmin/activities/{id}/tracks [get]
func (h *GarminHandler) ListTrackPoints(c *gin.Context) {
	var q trackListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, limit, offset, err := h.garmin.ListTrackPoints(c.Request.Context(), c.Param("id"), service.TrackListParams{
		Sort:     q.Sort,
		Order:    q.Order,
		Limit:    q.Limit,
		Offset:   q.Offset,
		Simplify: q.Simplify,
	})
	if err != nil {
		respondReadError(c, err, "Activity not found")
		return
	}

	c.JSON(http.StatusOK, model.PaginatedResponse[model.GarminTrackPoint]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// ChartData returns the full deduplicated time series for an activity
// @Summary Get chart data
// @Description Return all track points for chart rendering, deduplicated by timestamp, without pagination
// @Tags Garmin
// @Produce json
// @Param id path string true "Garmin activity ID"
// @Success 200 {array} model.GarminChartPoint
// @Failure 404 {object} model.ErrorResponse
// @Router /garmin/activities/{id}/chart-data [get]
func (h *GarminHandler) ChartData(c *gin.Context) {
	points, err := h.garmin.ChartData(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err, "Activity not found")
		return
	}
	c.JSON(http.StatusOK, points)
}

// ExportActivities streams the filtered activity list as an XLSX file
// @Summary Export activities
// @Description Export the filtered activity list as an XLSX workbook
// @Tags Garmin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param sport query string false "Filter by sport type"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} model.ErrorResponse
// @Router /garmin/activities/export [get]
func (h *GarminHandler) ExportActivities(c *gin.Context) {
	var q activityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	buf, err := h.garmin.ExportActivities(c.Request.Context(), q.params())
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("garmin-activities-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
