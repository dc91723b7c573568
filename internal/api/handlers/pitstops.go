package handlers

import (
	"net/http"

	"campus-ride-service/internal/api/dto"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
)

type PitStopHandler struct {
	Finder *services.PitStopFinder
}

func (h *PitStopHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/pitstops/along-route", h.AlongRoute)
}

// AlongRoute handles POST /pitstops/along-route.
func (h *PitStopHandler) AlongRoute(c *gin.Context) {
	var req dto.PitStopSearchRequest
	if !bindJSON(c, &req) {
		return
	}

	route, err := buildRoute(req.Waypoints)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	matches, err := h.Finder.AlongRoute(c.Request.Context(), route, req.RadiusMiles)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListPitStopResponse(matches))
}
