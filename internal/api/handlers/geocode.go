package handlers

import (
	"net/http"
	"strings"

	"campus-ride-service/internal/api/dto"
	"campus-ride-service/internal/ports"

	"github.com/gin-gonic/gin"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/geocode", h.Geocode)
}

// Geocode handles GET /geocode?q=<place>.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	coords, ok, err := h.Geocoder.Geocode(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !ok {
		writeError(c, http.StatusNotFound, "address not found")
		return
	}

	c.JSON(http.StatusOK, dto.GeocodeResponse{Query: q, Lat: coords.Lat, Lon: coords.Lon})
}
