package handlers

import (
	"context"
	"errors"
	"net/http"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// writeServiceError maps domain and service errors to HTTP responses.
// Anything unrecognised is logged and reported as a 500 without details.
func writeServiceError(c *gin.Context, err error) {
	var unresolved *services.UnresolvedAddressError

	switch {
	case errors.As(err, &unresolved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "address not found",
			"unresolved": unresolved.Addresses,
		})
	case errors.Is(err, domain.ErrRideNotFound):
		writeError(c, http.StatusNotFound, "ride offer not found")
	case errors.Is(err, domain.ErrCoordinateOutOfRange),
		errors.Is(err, domain.ErrInvalidWaypointKind),
		errors.Is(err, domain.ErrMissingStart),
		errors.Is(err, domain.ErrMissingEnd),
		errors.Is(err, domain.ErrDuplicateStart),
		errors.Is(err, domain.ErrDuplicateEnd),
		errors.Is(err, domain.ErrInvalidRideOffer),
		errors.Is(err, services.ErrEmptyAddress),
		errors.Is(err, services.ErrInvalidRadius):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "upstream timeout")
	default:
		zap.L().Error("request failed",
			zap.String("req_id", obs.RequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body: "+err.Error())
		return false
	}
	return true
}
