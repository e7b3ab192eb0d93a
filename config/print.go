package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const masked = "****"

// PrintConfig writes the effective configuration to stdout with secrets masked.
func PrintConfig(cfg *Config) {
	FprintConfig(os.Stdout, cfg)
}

func FprintConfig(w io.Writer, cfg *Config) {
	var b strings.Builder

	fmt.Fprintf(&b, "mode: %s\n", cfg.Mode)

	fmt.Fprintf(&b, "database:\n")
	fmt.Fprintf(&b, "  host: %s\n  port: %s\n  user: %s\n  password: %s\n  database: %s\n  sslmode: %s\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, mask(cfg.Database.Password), cfg.Database.Database, cfg.Database.SSLMode)
	fmt.Fprintf(&b, "  max_conns: %d\n  min_conns: %d\n  max_conn_lifetime: %s\n  max_conn_idle_time: %s\n",
		cfg.Database.MaxConns, cfg.Database.MinConns, cfg.Database.MaxConnLifetime, cfg.Database.MaxConnIdleTime)

	fmt.Fprintf(&b, "rabbitmq:\n  enabled: %t\n  host: %s\n  port: %s\n  user: %s\n  password: %s\n",
		cfg.RabbitMQ.Enabled, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, mask(cfg.RabbitMQ.Password))

	fmt.Fprintf(&b, "redis:\n  addr: %s\n  password: %s\n  db: %d\n  distance_cache_ttl: %s\n",
		orNone(cfg.Redis.Addr), mask(cfg.Redis.Password), cfg.Redis.DB, cfg.Redis.DistanceCacheTTL)

	fmt.Fprintf(&b, "maps:\n  api_key: %s\n  place_suffix: %q\n  timeout: %s\n",
		mask(cfg.Maps.APIKey), cfg.Maps.PlaceSuffix, cfg.Maps.Timeout)

	fmt.Fprintf(&b, "services:\n  booking_service: %s\n  driver_service: %s\n",
		cfg.Services.BookingService, cfg.Services.DriverService)

	fmt.Fprintf(&b, "auth:\n  jwt_secret: %s\n  issuer: %s\n", mask(cfg.Auth.JWTSecret), orNone(cfg.Auth.Issuer))
	fmt.Fprintf(&b, "reference_data:\n  corridors_path: %s\n", orNone(cfg.ReferenceData.CorridorsPath))
	fmt.Fprintf(&b, "log:\n  level: %s\n", cfg.Log.Level)

	fmt.Fprint(w, b.String())
}

func mask(secret string) string {
	if secret == "" {
		return "<empty>"
	}
	return masked
}

func orNone(v string) string {
	if v == "" {
		return "<none>"
	}
	return v
}
