package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode: booking-service or driver-service")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrInvalidMode     = errors.New("invalid mode")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		Database      DatabaseConfig
		RabbitMQ      RabbitMQConfig
		Redis         RedisConfig
		Maps          MapsConfig
		Services      ServicesConfig
		Auth          Auth
		ReferenceData ReferenceDataConfig
		Log           LogConfig
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"cabshare_user"`
		Password string `env:"DATABASE_PASSWORD" default:"cabshare_pass"`
		Database string `env:"DATABASE_DATABASE" default:"cabshare_db"`
		SSLMode  string `env:"DATABASE_SSLMODE" default:"disable"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		// Enabled=false runs without booking events.
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"true"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	RedisConfig struct {
		// Empty address disables the distance cache.
		Addr             string        `env:"REDIS_ADDR"`
		Password         string        `env:"REDIS_PASSWORD"`
		DB               int           `env:"REDIS_DB" default:"0"`
		DistanceCacheTTL time.Duration `env:"REDIS_DISTANCE_CACHE_TTL" default:"168h"`
	}

	MapsConfig struct {
		// Empty key disables live distance lookups.
		APIKey      string        `env:"MAPS_API_KEY"`
		PlaceSuffix string        `env:"MAPS_PLACE_SUFFIX" default:", Karnataka, India"`
		Timeout     time.Duration `env:"MAPS_TIMEOUT" default:"3s"`
	}

	ServicesConfig struct {
		BookingService string `env:"SERVICES_BOOKING_SERVICE" default:"3000"`
		DriverService  string `env:"SERVICES_DRIVER_SERVICE" default:"3001"`
	}

	Auth struct {
		JWTSecret string `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
		Issuer    string `env:"AUTH_ISSUER"`
	}

	ReferenceDataConfig struct {
		// CorridorsPath points to a corridor JSON file; empty uses the built-in Karnataka set.
		CorridorsPath string `env:"REFERENCE_DATA_CORRIDORS_PATH"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// PoolSettings tunes the pgx pool.
func (c DatabaseConfig) PoolSettings() (maxConns, minConns int32, maxConnLifetime, maxConnIdleTime time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

// Port returns the listen port of the configured mode.
func (c Config) Port() string {
	if c.Mode == types.DriverService {
		return c.Services.DriverService
	}
	return c.Services.BookingService
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// .env first, so its values win over the yaml file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)
	switch cfg.Mode {
	case types.BookingService, types.DriverService:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, cfg.Mode)
	}
}
