package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-ride-service/internal/adapters/cache"
	"campus-ride-service/internal/adapters/geocode"
	"campus-ride-service/internal/adapters/repositories"
	"campus-ride-service/internal/api"
	"campus-ride-service/internal/config"
	"campus-ride-service/internal/events"
	"campus-ride-service/internal/platform/db"
	"campus-ride-service/internal/platform/obs"
	"campus-ride-service/internal/ports"
	"campus-ride-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Kafka, geocoders) behind ports
// and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := obs.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Open(ctx, cfg.DatabaseURL, db.DefaultPoolConfig())
		if err != nil {
			return err
		}
		defer database.Close()
	} else {
		log.Warn("DATABASE_URL not set; ride offers and pit stops are disabled")
	}

	geocoder, closeGeocoder, err := buildGeocoder(cfg, database, log)
	if err != nil {
		return err
	}
	defer closeGeocoder()

	pricing, err := services.NewPriceCalculator(cfg.Fares)
	if err != nil {
		return err
	}
	quoter := services.NewQuoter(pricing, geocoder)

	deps := api.Deps{
		Logger:   log,
		Geocoder: geocoder,
		Quoter:   quoter,
	}

	if database != nil {
		publisher := buildPublisher(cfg, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn("close ride publisher", zap.Error(err))
			}
		}()

		deps.DB = database
		deps.PitStops = services.NewPitStopFinder(repositories.NewPostgresPitStopRepository(database), cfg.PitStopRadiusMiles)
		deps.Rides = services.NewRideOfferService(quoter, repositories.NewPostgresRideRepository(database), publisher)
	}

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server forced shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}

// buildGeocoder assembles the configured backends, always falling back to the
// static table, and wraps them with the configured cache.
func buildGeocoder(cfg config.Config, database *sql.DB, log *zap.Logger) (ports.Geocoder, func(), error) {
	closer := func() {}

	var (
		backends  []ports.Geocoder
		hasStatic bool
	)
	for _, name := range cfg.Geocoders {
		switch name {
		case config.GeocoderORS:
			opts := []geocode.ORSOption{}
			if cfg.ORSBaseURL != "" {
				opts = append(opts, geocode.WithBaseURL(cfg.ORSBaseURL))
			}
			g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, opts...)
			if err != nil {
				return nil, closer, err
			}
			backends = append(backends, g)
		case config.GeocoderGoogle:
			g, err := geocode.NewGoogleGeocoder(cfg.GoogleMapsKey)
			if err != nil {
				return nil, closer, err
			}
			backends = append(backends, g)
		case config.GeocoderStatic:
			hasStatic = true
			backends = append(backends, geocode.NewStaticGeocoder(geocode.DefaultPlaces))
		}
	}
	if !hasStatic {
		backends = append(backends, geocode.NewStaticGeocoder(geocode.DefaultPlaces))
	}

	var g ports.Geocoder = backends[0]
	if len(backends) > 1 {
		g = geocode.NewFallbackGeocoder(backends...)
	}

	switch cfg.GeocodeCache {
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closer = func() { _ = rdb.Close() }
		g = geocode.NewCachingGeocoder(g, cache.NewRedisGeocodeCache(rdb, cfg.GeocodeCacheTTL))
		log.Info("geocode cache enabled", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	case config.CachePostgres:
		if database == nil {
			return nil, closer, errors.New("geocode cache postgres: no database connection")
		}
		g = geocode.NewCachingGeocoder(g, cache.NewSQLGeocodeCache(database))
		log.Info("geocode cache enabled", zap.String("backend", "postgres"))
	}

	return g, closer, nil
}

func buildPublisher(cfg config.Config, log *zap.Logger) ports.RideEventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("KAFKA_BROKERS not set; ride events are not published")
		return events.NopPublisher{}
	}
	log.Info("publishing ride events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	return events.NewKafkaRidePublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
