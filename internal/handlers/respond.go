package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/models"
)

// statusFor maps engine error kinds to HTTP statuses. Clients treat any of
// these as a rejection of the speculative mutation; only 503 is retryable.
func statusFor(kind engine.Kind) int {
	switch kind {
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindForbidden:
		return http.StatusForbidden
	case engine.KindInvalidPosition:
		return http.StatusUnprocessableEntity
	case engine.KindInvalidArgument:
		return http.StatusBadRequest
	case engine.KindLastOwnerViolation, engine.KindConflict:
		return http.StatusConflict
	case engine.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondEngineError(c *gin.Context, err error) {
	kind := engine.KindOf(err)
	c.JSON(statusFor(kind), models.ErrorResponse{
		Error:   string(kind),
		Message: err.Error(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
