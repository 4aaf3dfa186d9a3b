package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "line-dispatch/pkg/config"
)

// minJWTSecretLength mirrors auth.MinSecretLength; config cannot import the handler layer.
const minJWTSecretLength = 32

// ServerConfig is the HTTP server, database and auth configuration.
type ServerConfig struct {
	Addr    string
	Version string

	DBDriver    string
	DatabaseURL string

	JWTSecret    string
	AuthDisabled bool

	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64

	TraceExporter   string
	ShutdownTimeout time.Duration
}

// LoadServerConfig reads ServerConfig from the environment and validates it.
// DATABASE_URL and JWT_SECRET may be supplied through their _FILE variants.
func LoadServerConfig() (*ServerConfig, error) {
	dsn, err := pkgconfig.GetEnvOrFile("DATABASE_URL")
	if err != nil {
		return nil, err
	}
	secret, err := pkgconfig.GetEnvOrFile("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Addr:            pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version:         pkgconfig.GetEnvString("VERSION", "dev"),
		DBDriver:        pkgconfig.GetEnvString("DB_DRIVER", "pgx"),
		DatabaseURL:     dsn,
		JWTSecret:       secret,
		AuthDisabled:    pkgconfig.GetEnvBool("AUTH_DISABLED", false),
		RateLimitRPS:    pkgconfig.GetEnvFloat("API_RATE_LIMIT_RPS", 5),
		RateLimitBurst:  pkgconfig.GetEnvInt("API_RATE_LIMIT_BURST", 20),
		MaxBodyBytes:    int64(pkgconfig.GetEnvInt("HTTP_MAX_BODY_MB", 8)) * 1024 * 1024,
		TraceExporter:   pkgconfig.GetEnvString("TRACE_EXPORTER", ""),
		ShutdownTimeout: pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL or DATABASE_URL_FILE is required"))
	}
	if !c.AuthDisabled && len(c.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters unless AUTH_DISABLED=true", minJWTSecretLength))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("API_RATE_LIMIT_RPS must be positive, got %g", c.RateLimitRPS))
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("API_RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("HTTP_MAX_BODY_MB must be positive"))
	}
	if err := pkgconfig.ValidateDurationRange(c.ShutdownTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}

	return errors.Join(errs...)
}
