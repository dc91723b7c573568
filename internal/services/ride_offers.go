package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
	"campus-ride-service/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OfferRideRequest struct {
	DriverID  string
	Waypoints []domain.Waypoint
	DepartAt  time.Time
	Seats     int
}

func (r OfferRideRequest) validate() error {
	switch {
	case strings.TrimSpace(r.DriverID) == "":
		return fmt.Errorf("%w: driver id is required", domain.ErrInvalidRideOffer)
	case r.Seats < 1 || r.Seats > domain.MaxSeatsPerRide:
		return fmt.Errorf("%w: seats must be between 1 and %d", domain.ErrInvalidRideOffer, domain.MaxSeatsPerRide)
	case r.DepartAt.IsZero():
		return fmt.Errorf("%w: departure time is required", domain.ErrInvalidRideOffer)
	}
	return nil
}

// RideOfferService prices and stores ride offers.
type RideOfferService struct {
	quoter    *Quoter
	repo      ports.RideRepository
	publisher ports.RideEventPublisher
	now       func() time.Time
}

func NewRideOfferService(quoter *Quoter, repo ports.RideRepository, publisher ports.RideEventPublisher) *RideOfferService {
	return &RideOfferService{quoter: quoter, repo: repo, publisher: publisher, now: time.Now}
}

// Offer quotes the requested route and persists it. The stored price per seat
// is the unrounded total of the quote.
func (s *RideOfferService) Offer(ctx context.Context, req OfferRideRequest) (_ *domain.RideOffer, err error) {
	defer obs.Time(ctx, "rides.Offer")(&err)

	if err := req.validate(); err != nil {
		return nil, err
	}

	route, err := domain.NewRoute(req.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("offer ride: %w", err)
	}

	quote := s.quoter.QuoteRoute(route)
	offer := domain.NewRideOffer(strings.TrimSpace(req.DriverID), quote, req.DepartAt, req.Seats, s.now())

	if err := s.repo.SaveRideOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("offer ride: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRideOffered(ctx, offer); err != nil {
			zap.L().Warn("publish ride offered failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("ride_id", offer.ID.String()),
				zap.Error(err),
			)
		}
	}

	return offer, nil
}

func (s *RideOfferService) Get(ctx context.Context, id uuid.UUID) (*domain.RideOffer, error) {
	offer, err := s.repo.GetRideOffer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ride offer: %w", err)
	}
	return offer, nil
}
