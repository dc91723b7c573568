package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"campus-ride-service/internal/services"

	"github.com/joho/godotenv"
)

// Get returns the trimmed value of key, or def when it is unset or blank.
func Get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func GetInt(key string, def int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return v, nil
}

func GetFloat(key string, def float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return v, nil
}

func GetBool(key string, def bool) (bool, error) {
	raw := Get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config %s: %w", key, err)
	}
	return v, nil
}

func GetDuration(key string, def time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return v, nil
}

// GetList splits a comma-separated value, dropping empty items.
func GetList(key string, def []string) []string {
	raw := Get(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

const (
	GeocoderStatic = "static"
	GeocoderORS    = "ors"
	GeocoderGoogle = "google"

	CacheNone     = "none"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

type Config struct {
	Env      string
	LogLevel string

	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Geocoder backends tried in order. The static table is always the last resort.
	Geocoders       []string
	ORSAPIKey       string
	ORSBaseURL      string
	GoogleMapsKey   string
	GeocodeCache    string
	GeocodeCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	Fares              services.FareConfig
	PitStopRadiusMiles float64
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (Config, error) {
	var (
		cfg  Config
		errs []error
	)

	intVar := func(dst *int, key string, def int) {
		v, err := GetInt(key, def)
		errs = append(errs, err)
		*dst = v
	}
	floatVar := func(dst *float64, key string, def float64) {
		v, err := GetFloat(key, def)
		errs = append(errs, err)
		*dst = v
	}
	durationVar := func(dst *time.Duration, key string, def time.Duration) {
		v, err := GetDuration(key, def)
		errs = append(errs, err)
		*dst = v
	}

	cfg.Env = Get("APP_ENV", "production")
	cfg.LogLevel = Get("LOG_LEVEL", "info")

	cfg.HTTPAddr = ":" + Get("PORT", "8080")
	durationVar(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", 10*time.Second)
	durationVar(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", 15*time.Second)
	durationVar(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.DatabaseURL = Get("DATABASE_URL", "")

	cfg.RedisAddr = Get("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = Get("REDIS_PASSWORD", "")
	intVar(&cfg.RedisDB, "REDIS_DB", 0)

	for _, g := range GetList("GEOCODER", []string{GeocoderStatic}) {
		cfg.Geocoders = append(cfg.Geocoders, strings.ToLower(g))
	}
	cfg.ORSAPIKey = Get("ORS_API_KEY", "")
	cfg.ORSBaseURL = Get("ORS_BASE_URL", "")
	cfg.GoogleMapsKey = Get("GOOGLE_MAPS_API_KEY", "")
	cfg.GeocodeCache = strings.ToLower(Get("GEOCODE_CACHE", CacheNone))
	durationVar(&cfg.GeocodeCacheTTL, "GEOCODE_CACHE_TTL", 24*time.Hour)

	cfg.KafkaBrokers = GetList("KAFKA_BROKERS", nil)
	cfg.KafkaTopic = Get("KAFKA_RIDES_TOPIC", "campus.rides")

	fares := services.DefaultFareConfig()
	floatVar(&fares.BaseFee, "FARE_BASE_FEE", fares.BaseFee)
	floatVar(&fares.CostPerMile, "FARE_COST_PER_MILE", fares.CostPerMile)
	floatVar(&fares.CostPerMinute, "FARE_COST_PER_MINUTE", fares.CostPerMinute)
	floatVar(&fares.MinimumFare, "FARE_MINIMUM", fares.MinimumFare)
	floatVar(&fares.MaxFarePerMile, "FARE_MAX_PER_MILE", fares.MaxFarePerMile)
	cfg.Fares = fares

	floatVar(&cfg.PitStopRadiusMiles, "PITSTOP_RADIUS_MILES", services.DefaultPitStopRadiusMiles)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, g := range c.Geocoders {
		switch g {
		case GeocoderStatic:
		case GeocoderORS:
			if c.ORSAPIKey == "" {
				return errors.New("config: GEOCODER=ors requires ORS_API_KEY")
			}
		case GeocoderGoogle:
			if c.GoogleMapsKey == "" {
				return errors.New("config: GEOCODER=google requires GOOGLE_MAPS_API_KEY")
			}
		default:
			return fmt.Errorf("config: unknown geocoder %q", g)
		}
	}

	switch c.GeocodeCache {
	case CacheNone, CacheRedis:
	case CachePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: GEOCODE_CACHE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown geocode cache %q", c.GeocodeCache)
	}

	if err := c.Fares.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.PitStopRadiusMiles <= 0 {
		return errors.New("config: PITSTOP_RADIUS_MILES must be positive")
	}
	return nil
}
