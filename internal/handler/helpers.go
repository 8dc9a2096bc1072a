package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// abortDetail writes the uniform error body
func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Detail: detail})
}

// respondReadError maps a read-path service error onto the error
// taxonomy: 404 for a missing entity, 500 otherwise.
func respondReadError(c *gin.Context, err error, notFoundDetail string) {
	if errors.Is(err, store.ErrNotFound) {
		abortDetail(c, http.StatusNotFound, notFoundDetail)
		return
	}
	abortDetail(c, http.StatusInternalServerError, err.Error())
}
