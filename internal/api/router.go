package api

import (
	"campus-ride-service/internal/api/handlers"
	"campus-ride-service/internal/ports"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the HTTP layer needs. DB may be nil when the service
// runs without Postgres.
type Deps struct {
	Logger   *zap.Logger
	DB       handlers.Pinger
	Geocoder ports.Geocoder
	Quoter   *services.Quoter
	PitStops *services.PitStopFinder
	Rides    *services.RideOfferService
}

// NewRouter wires HTTP handlers with their dependencies and returns a gin engine.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	root := &router.RouterGroup

	(&handlers.HealthHandler{DB: d.DB}).RegisterRoutes(root)
	(&handlers.GeocodeHandler{Geocoder: d.Geocoder}).RegisterRoutes(root)
	(&handlers.QuoteHandler{Quoter: d.Quoter}).RegisterRoutes(root)

	if d.PitStops != nil {
		(&handlers.PitStopHandler{Finder: d.PitStops}).RegisterRoutes(root)
	}
	if d.Rides != nil {
		(&handlers.RideHandler{Rides: d.Rides}).RegisterRoutes(root)
	}

	return router
}
