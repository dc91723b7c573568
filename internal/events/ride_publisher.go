package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campus-ride-service/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	RideOfferedType     = "ride.offered"
	DefaultRidesTopic   = "campus.rides"
	rideOfferedVersion  = 1
	defaultWriteTimeout = 5 * time.Second
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type WaypointPayload struct {
	Kind  string  `json:"kind"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// RideOffered is the JSON body of a ride.offered message.
type RideOffered struct {
	Type            string            `json:"type"`
	Version         int               `json:"version"`
	RideID          string            `json:"ride_id"`
	DriverID        string            `json:"driver_id"`
	Waypoints       []WaypointPayload `json:"waypoints"`
	DepartAt        time.Time         `json:"depart_at"`
	SeatsTotal      int               `json:"seats_total"`
	PricePerSeat    float64           `json:"price_per_seat"`
	DistanceMiles   float64           `json:"distance_miles"`
	DurationMinutes float64           `json:"duration_minutes"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

func NewRideOffered(offer *domain.RideOffer) RideOffered {
	wps := make([]WaypointPayload, 0, len(offer.Waypoints))
	for _, w := range offer.Waypoints {
		wps = append(wps, WaypointPayload{Kind: string(w.Kind), Lat: w.Coords.Lat, Lon: w.Coords.Lon, Label: w.Label})
	}
	return RideOffered{
		Type:            RideOfferedType,
		Version:         rideOfferedVersion,
		RideID:          offer.ID.String(),
		DriverID:        offer.DriverID,
		Waypoints:       wps,
		DepartAt:        offer.DepartAt,
		SeatsTotal:      offer.SeatsTotal,
		PricePerSeat:    offer.PricePerSeat,
		DistanceMiles:   offer.DistanceMiles,
		DurationMinutes: offer.DurationMinutes,
		OccurredAt:      offer.CreatedAt,
	}
}

// KafkaRidePublisher writes ride events keyed by ride id so every event for a
// ride lands on the same partition.
type KafkaRidePublisher struct {
	writer Writer
}

// NewKafkaRidePublisher creates a publisher writing to topic on the given brokers.
func NewKafkaRidePublisher(brokers []string, topic string) *KafkaRidePublisher {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultRidesTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           defaultWriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return &KafkaRidePublisher{writer: w}
}

// NewKafkaRidePublisherWithWriter allows injecting a test writer.
func NewKafkaRidePublisherWithWriter(w Writer) *KafkaRidePublisher {
	return &KafkaRidePublisher{writer: w}
}

func (p *KafkaRidePublisher) PublishRideOffered(ctx context.Context, offer *domain.RideOffer) error {
	b, err := json.Marshal(NewRideOffered(offer))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", RideOfferedType, err)
	}
	msg := kafka.Message{
		Key:   []byte(offer.ID.String()),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(RideOfferedType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", RideOfferedType, err)
	}
	return nil
}

func (p *KafkaRidePublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishRideOffered(context.Context, *domain.RideOffer) error { return nil }

func (NopPublisher) Close() error { return nil }
