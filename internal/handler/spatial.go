package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/service"
)

// SpatialHandler handles spatial search requests
type SpatialHandler struct {
	spatial *service.SpatialService
}

// NewSpatialHandler creates a new spatial handler
func NewSpatialHandler(spatial *service.SpatialService) *SpatialHandler {
	return &SpatialHandler{spatial: spatial}
}

type nearbyQuery struct {
	Lat          *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lon          *float64 `form:"lon" binding:"required,gte=-180,lte=180"`
	RadiusMeters int      `form:"radius_meters,default=1000" binding:"min=1,max=100000"`
	Source       string   `form:"source"`
	Limit        int      `form:"limit,default=100" binding:"min=1,max=5000"`
}

// Nearby finds GPS points within a radius of a coordinate
// @Summary Find nearby points
// @Description Find GPS points within a radius of a coordinate, sorted by distance
// @Tags Spatial
// @Produce json
// @Param lat query number true "Latitude of center point"
// @Param lon query number true "Longitude of center point"
// @Param radius_meters query int false "Search radius in meters" default(1000)
// @Param source query string false "Filter by source: owntracks or garmin"
// @Param limit query int false "Limit" default(100)
// @Success 200 {array} model.NearbyPoint
// @Failure 400 {object} model.ErrorResponse
// @Router /spatial/nearby [get]
func (h *SpatialHandler) Nearby(c *gin.Context) {
	var q nearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.spatial.Nearby(c.Request.Context(), *q.Lat, *q.Lon, q.RadiusMeters, q.Limit, q.Source)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, points)
}

type distanceQuery struct {
	FromLat *float64 `form:"from_lat" binding:"required,gte=-90,lte=90"`
	FromLon *float64 `form:"from_lon" binding:"required,gte=-180,lte=180"`
	ToLat   *float64 `form:"to_lat" binding:"required,gte=-90,lte=90"`
	ToLon   *float64 `form:"to_lon" binding:"required,gte=-180,lte=180"`
}

// Distance computes the geodesic distance between two coordinates
// @Summary Calculate distance
// @Description Calculate the geodesic distance in meters between two coordinates
// @Tags Spatial
// @Produce json
// @Param from_lat query number true "From latitude"
// @Param from_lon query number true "From longitude"
// @Param to_lat query number true "To latitude"
// @Param to_lon query number true "To longitude"
// @Success 200 {object} model.DistanceResult
// @Failure 400 {object} model.ErrorResponse
// @Router /spatial/distance [get]
func (h *SpatialHandler) Distance(c *gin.Context) {
	var q distanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.spatial.Distance(c.Request.Context(), *q.FromLat, *q.FromLon, *q.ToLat, *q.ToLon)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

type withinReferenceQuery struct {
	Source string `form:"source"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=5000"`
}

// WithinReference finds all GPS points inside a named reference location
// @Summary Find points within a reference location
// @Description Find all GPS points within a named reference location's radius
// @Tags Spatial
// @Produce json
// @Param name path string true "Reference location name"
// @Param source query string false "Filter by source: owntracks or garmin"
// @Param limit query int false "Limit" default(100)
// @Success 200 {object} model.WithinReferenceResult
// @Failure 404 {object} model.ErrorResponse
// @Router /spatial/within-reference/{name} [get]
func (h *SpatialHandler) WithinReference(c *gin.Context) {
	var q withinReferenceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	name := c.Param("name")
	result, err := h.spatial.WithinReference(c.Request.Context(), name, q.Limit, q.Source)
	if err != nil {
		respondReadError(c, err, "Reference location '"+name+"' not found")
		return
	}
	c.JSON(http.StatusOK, result)
}
