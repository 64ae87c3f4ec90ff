package handlers

import (
	"errors"
	"net/http"

	"tasklist/internal/service"
	"tasklist/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondError maps any internal failure to the minimal external error
// shape. Unexpected errors are logged in full and reduced to a fixed
// generic body; no message, query text, or stack ever crosses out.
func (h *Handler) respondError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already in use"})
	default:
		if h.log != nil {
			h.log.Errorw("internal_error",
				"err", err,
				"path", c.FullPath(),
				"request_id", c.GetString(requestIDCtxKey),
			)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
