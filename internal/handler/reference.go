package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/service"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// ReferenceHandler handles reference location CRUD requests
type ReferenceHandler struct {
	references *service.ReferenceService
}

// NewReferenceHandler creates a new reference location handler
func NewReferenceHandler(references *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{references: references}
}

// List returns all reference locations
// @Summary List reference locations
// @Description List all reference locations ordered by name
// @Tags Reference Locations
// @Produce json
// @Success 200 {array} model.ReferenceLocation
// @Router /reference-locations [get]
func (h *ReferenceHandler) List(c *gin.Context) {
	refs, err := h.references.List(c.Request.Context())
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, refs)
}

// Get returns a single reference location by ID
// @Summary Get reference location
// @Description Get a single reference location by ID
// @Tags Reference Locations
// @Produce json
// @Param id path int true "Reference location ID"
// @Success 200 {object} model.ReferenceLocation
// @Failure 404 {object} model.ErrorResponse
// @Router /reference-locations/{id} [get]
func (h *ReferenceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid id")
		return
	}

	ref, err := h.references.Get(c.Request.Context(), id)
	if err != nil {
		respondReadError(c, err, "Reference location not found")
		return
	}
	c.JSON(http.StatusOK, ref)
}

// Create creates a new reference location
// @Summary Create reference location
// @Description Create a new reference location (auth required)
// @Tags Reference Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ReferenceLocationCreate true "Reference location data"
// @Success 201 {object} model.ReferenceLocation
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /reference-locations [post]
func (h *ReferenceHandler) Create(c *gin.Context) {
	var body model.ReferenceLocationCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := h.references.Create(c.Request.Context(), &body)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, ref)
}

// Update updates a reference location from a partial body
// @Summary Update reference location
// @Description Partially update a reference location; only provided fields change (auth required)
// @Tags Reference Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reference location ID"
// @Param body body model.ReferenceLocationUpdate true "Fields to update"
// @Success 200 {object} model.ReferenceLocation
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /reference-locations/{id} [put]
func (h *ReferenceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid id")
		return
	}

	var body model.ReferenceLocationUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := h.references.Update(c.Request.Context(), id, &body)
	switch {
	case errors.Is(err, service.ErrNoFields):
		abortDetail(c, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, store.ErrNotFound):
		abortDetail(c, http.StatusNotFound, "Reference location not found")
	case err != nil:
		abortDetail(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, ref)
	}
}

// Delete removes a reference location
// @Summary Delete reference location
// @Description Delete a reference location by ID (auth required)
// @Tags Reference Locations
// @Security BearerAuth
// @Param id path int true "Reference location ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /reference-locations/{id} [delete]
func (h *ReferenceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.references.Delete(c.Request.Context(), id); err != nil {
		respondReadError(c, err, "Reference location not found")
		return
	}
	c.Status(http.StatusNoContent)
}
