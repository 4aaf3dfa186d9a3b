// Package config loads the service configuration from the environment and
// from the optional collections YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"line-dispatch/internal/infra/credential"
	pkgconfig "line-dispatch/pkg/config"
)

// File storage strategies for staged file payloads.
const (
	FileStorageInline = "inline"
	FileStorageGDrive = "gdrive"
)

// LineConfig is the LINE dispatch configuration.
type LineConfig struct {
	// Exactly one of the literal or _FILE variant is used per credential.
	AccessToken       string
	AccessTokenFile   string
	ChannelSecret     string
	ChannelSecretFile string

	BaseURL string
	Timeout time.Duration

	DryRun                bool
	CircuitBreakerEnabled bool

	DefaultLocale        string
	NotificationDisabled bool

	MaxFileSizeMB    int
	AllowedMIMETypes []string

	FileStorage           string
	GDriveCredentialsFile string
	GDriveFolderID        string

	CollectionsFile string
}

// LoadLineConfig reads LineConfig from the environment and validates it.
func LoadLineConfig() (*LineConfig, error) {
	cfg := &LineConfig{
		AccessToken:           pkgconfig.GetEnvString("LINE_CHANNEL_ACCESS_TOKEN", ""),
		AccessTokenFile:       pkgconfig.GetEnvString("LINE_CHANNEL_ACCESS_TOKEN_FILE", ""),
		ChannelSecret:         pkgconfig.GetEnvString("LINE_CHANNEL_SECRET", ""),
		ChannelSecretFile:     pkgconfig.GetEnvString("LINE_CHANNEL_SECRET_FILE", ""),
		BaseURL:               pkgconfig.GetEnvString("LINE_API_BASE_URL", "https://api.line.me"),
		Timeout:               pkgconfig.GetEnvDuration("LINE_API_TIMEOUT", 10*time.Second),
		DryRun:                pkgconfig.GetEnvBool("LINE_DRY_RUN", false),
		CircuitBreakerEnabled: pkgconfig.GetEnvBool("LINE_CIRCUIT_BREAKER_ENABLED", true),
		DefaultLocale:         pkgconfig.GetEnvString("LINE_DEFAULT_LOCALE", "tw"),
		NotificationDisabled:  pkgconfig.GetEnvBool("LINE_NOTIFICATION_DISABLED", false),
		MaxFileSizeMB:         pkgconfig.GetEnvInt("LINE_MAX_FILE_SIZE_MB", 5),
		AllowedMIMETypes:      pkgconfig.GetEnvStringList("LINE_ALLOWED_MIME_TYPES", nil),
		FileStorage:           strings.ToLower(pkgconfig.GetEnvString("LINE_FILE_STORAGE", FileStorageInline)),
		GDriveCredentialsFile: pkgconfig.GetEnvString("GDRIVE_CREDENTIALS_FILE", ""),
		GDriveFolderID:        pkgconfig.GetEnvString("GDRIVE_FOLDER_ID", ""),
		CollectionsFile:       pkgconfig.GetEnvString("LINE_COLLECTIONS_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid LINE configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *LineConfig) Validate() error {
	var errs []error

	if !c.DryRun {
		if c.AccessToken == "" && c.AccessTokenFile == "" {
			errs = append(errs, errors.New("LINE_CHANNEL_ACCESS_TOKEN or LINE_CHANNEL_ACCESS_TOKEN_FILE is required"))
		}
		if c.ChannelSecret == "" && c.ChannelSecretFile == "" {
			errs = append(errs, errors.New("LINE_CHANNEL_SECRET or LINE_CHANNEL_SECRET_FILE is required"))
		}
	}

	if err := pkgconfig.ValidateDurationRange(c.Timeout, time.Second, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("LINE_API_TIMEOUT: %w", err))
	}
	if c.MaxFileSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("LINE_MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB))
	}

	switch c.FileStorage {
	case FileStorageInline:
	case FileStorageGDrive:
		if c.GDriveCredentialsFile == "" {
			errs = append(errs, errors.New("GDRIVE_CREDENTIALS_FILE is required when LINE_FILE_STORAGE=gdrive"))
		}
	default:
		errs = append(errs, fmt.Errorf("LINE_FILE_STORAGE must be %q or %q, got %q", FileStorageInline, FileStorageGDrive, c.FileStorage))
	}

	return errors.Join(errs...)
}

// MaxFileBytes returns the staging ceiling in bytes.
func (c *LineConfig) MaxFileBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// AccessTokenSource returns the deferred source of the channel access token.
func (c *LineConfig) AccessTokenSource() credential.Source {
	return source(c.AccessToken, c.AccessTokenFile, c.DryRun)
}

// ChannelSecretSource returns the deferred source of the channel secret.
func (c *LineConfig) ChannelSecretSource() credential.Source {
	return source(c.ChannelSecret, c.ChannelSecretFile, c.DryRun)
}

func source(literal, file string, dryRun bool) credential.Source {
	switch {
	case literal != "":
		return credential.Static(literal)
	case file != "":
		return credential.File(file)
	case dryRun:
		return credential.Static("dry-run")
	default:
		return credential.Static("")
	}
}
