package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,       default=8080"`
	GinMode  string `env:"GIN_MODE,   default=debug"`
	LogLevel string `env:"LOG_LEVEL,  default=info"`
	// LogPretty switches zerolog to the console writer.
	LogPretty bool `env:"LOG_PRETTY, default=true"`
	// CORSOrigin is the browser origin allowed to call the API.
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	DB      DBConfig
	Session SessionConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
	Geo     GeoConfig
}

type DBConfig struct {
	Path string `env:"DB_PATH,  default=delivery.db"`
	// Reset drops the database file on start, so every restart begins empty.
	Reset bool `env:"DB_RESET, default=true"`
}

type SessionConfig struct {
	// JWTSecret used to sign session tokens
	JWTSecret string        `env:"JWT_SECRET,  default=foodieride_session_secret"`
	TTL       time.Duration `env:"SESSION_TTL, default=24h"`
}

// RedisConfig is optional; an empty Addr keeps session revocations in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// AMQPConfig is optional; an empty URL disables order event publishing.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=foodieride.orders"`
}

type GeoConfig struct {
	OverpassURL  string        `env:"OVERPASS_URL,    default=http://overpass-api.de/api/interpreter"`
	NominatimURL string        `env:"NOMINATIM_URL,   default=https://nominatim.openstreetmap.org/search"`
	Timeout      time.Duration `env:"GEO_TIMEOUT,     default=10s"`
	UserAgent    string        `env:"GEO_USER_AGENT,  default=FoodieRide"`
	DefaultLat   float64       `env:"DEFAULT_LAT,     default=17.3850"`
	DefaultLon   float64       `env:"DEFAULT_LON,     default=78.4867"`
	RadiusMeters int           `env:"SEARCH_RADIUS_M, default=5000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFrom resolves the configuration from a fixed set of variables instead of
// the process environment.
func LoadFrom(ctx context.Context, vars map[string]string) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(vars),
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
