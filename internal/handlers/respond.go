package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Store failures are
// already logged by the services.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, convert.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsStoreError(err):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// parseDueDate reads an optional yyyy-MM-dd date. An empty string reads as
// not provided.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := convert.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
