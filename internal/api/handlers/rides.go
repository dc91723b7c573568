package handlers

import (
	"net/http"

	"campus-ride-service/internal/api/dto"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RideHandler struct {
	Rides *services.RideOfferService
}

func (h *RideHandler) RegisterRoutes(r *gin.RouterGroup) {
	rides := r.Group("/rides")
	{
		rides.POST("", h.Offer)
		rides.GET("/:id", h.Get)
	}
}

// Offer handles POST /rides.
func (h *RideHandler) Offer(c *gin.Context) {
	var req dto.OfferRideRequest
	if !bindJSON(c, &req) {
		return
	}

	wps, err := dto.ToWaypoints(req.Waypoints)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	offer, err := h.Rides.Offer(c.Request.Context(), services.OfferRideRequest{
		DriverID:  req.DriverID,
		Waypoints: wps,
		DepartAt:  req.DepartAt,
		Seats:     req.Seats,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRideOfferResponse(offer))
}

// Get handles GET /rides/:id.
func (h *RideHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid ride id")
		return
	}

	offer, err := h.Rides.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRideOfferResponse(offer))
}
