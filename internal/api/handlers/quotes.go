package handlers

import (
	"net/http"

	"campus-ride-service/internal/api/dto"
	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	Quoter *services.Quoter
}

func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	quotes := r.Group("/quotes")
	{
		quotes.POST("", h.QuoteRoute)
		quotes.POST("/addresses", h.QuoteAddresses)
	}
}

// QuoteRoute handles POST /quotes with explicit waypoints.
func (h *QuoteHandler) QuoteRoute(c *gin.Context) {
	var req dto.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	route, err := buildRoute(req.Waypoints)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if req.OptimizeStops {
		route, err = services.SuggestPitStopOrder(route)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(h.Quoter.QuoteRoute(route)))
}

// QuoteAddresses handles POST /quotes/addresses with free-text place names.
func (h *QuoteHandler) QuoteAddresses(c *gin.Context) {
	var req dto.AddressQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.Quoter.QuoteAddresses(c.Request.Context(), services.QuoteAddressRequest{
		Start:    req.Start,
		End:      req.End,
		PitStops: req.PitStops,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

func buildRoute(in []dto.WaypointRequest) (domain.Route, error) {
	wps, err := dto.ToWaypoints(in)
	if err != nil {
		return domain.Route{}, err
	}
	return domain.NewRoute(wps)
}
