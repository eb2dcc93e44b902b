package handler

import (
	"errors"
	"net/http"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondSuccess writes a 200 response with the given payload.
func respondSuccess(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// respondCreated writes a 201 response with the given payload.
func respondCreated(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// respondBadRequest writes a 400 response with an error message.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// respondError maps a domain error to its HTTP status. Unrecognized errors
// become 500s without leaking internals.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *domain.ValidationError
		notFoundErr     *domain.NotFoundError
		conflictErr     *domain.ConflictError
		invalidStateErr *domain.InvalidStateError
		unavailableErr  *domain.UnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusConflict, gin.H{"error": invalidStateErr.Error()})
	case errors.As(err, &unavailableErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
