package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"line-dispatch/internal/infra/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setLineEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{
		"LINE_CHANNEL_ACCESS_TOKEN", "LINE_CHANNEL_ACCESS_TOKEN_FILE",
		"LINE_CHANNEL_SECRET", "LINE_CHANNEL_SECRET_FILE",
		"LINE_API_BASE_URL", "LINE_API_TIMEOUT", "LINE_DRY_RUN",
		"LINE_CIRCUIT_BREAKER_ENABLED", "LINE_DEFAULT_LOCALE", "LINE_NOTIFICATION_DISABLED",
		"LINE_MAX_FILE_SIZE_MB", "LINE_ALLOWED_MIME_TYPES", "LINE_FILE_STORAGE",
		"GDRIVE_CREDENTIALS_FILE", "GDRIVE_FOLDER_ID", "LINE_COLLECTIONS_FILE",
	} {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadLineConfig_Defaults(t *testing.T) {
	setLineEnv(t, map[string]string{
		"LINE_CHANNEL_ACCESS_TOKEN": "tok",
		"LINE_CHANNEL_SECRET":       "sec",
	})

	cfg, err := LoadLineConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.line.me", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.CircuitBreakerEnabled)
	assert.Equal(t, "tw", cfg.DefaultLocale)
	assert.Equal(t, 5, cfg.MaxFileSizeMB)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxFileBytes())
	assert.Equal(t, FileStorageInline, cfg.FileStorage)
	assert.Nil(t, cfg.AllowedMIMETypes)
}

func TestLoadLineConfig_Overrides(t *testing.T) {
	setLineEnv(t, map[string]string{
		"LINE_CHANNEL_ACCESS_TOKEN":  "tok",
		"LINE_CHANNEL_SECRET":        "sec",
		"LINE_API_TIMEOUT":           "30s",
		"LINE_DEFAULT_LOCALE":        "en",
		"LINE_NOTIFICATION_DISABLED": "true",
		"LINE_MAX_FILE_SIZE_MB":      "10",
		"LINE_ALLOWED_MIME_TYPES":    "image/*,application/pdf",
		"LINE_FILE_STORAGE":          "GDRIVE",
		"GDRIVE_CREDENTIALS_FILE":    "/etc/sa.json",
		"GDRIVE_FOLDER_ID":           "folder",
	})

	cfg, err := LoadLineConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.True(t, cfg.NotificationDisabled)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileBytes())
	assert.Equal(t, []string{"image/*", "application/pdf"}, cfg.AllowedMIMETypes)
	assert.Equal(t, FileStorageGDrive, cfg.FileStorage)
	assert.Equal(t, "folder", cfg.GDriveFolderID)
}

func TestLineConfig_Validate(t *testing.T) {
	valid := func() LineConfig {
		return LineConfig{
			AccessToken:   "tok",
			ChannelSecret: "sec",
			Timeout:       10 * time.Second,
			MaxFileSizeMB: 5,
			FileStorage:   FileStorageInline,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *LineConfig)
		wantErr string
	}{
		{name: "TC-1: valid", mutate: func(c *LineConfig) {}},
		{name: "TC-2: token via file", mutate: func(c *LineConfig) { c.AccessToken, c.AccessTokenFile = "", "/run/secrets/t" }},
		{name: "TC-3: missing token", mutate: func(c *LineConfig) { c.AccessToken = "" }, wantErr: "LINE_CHANNEL_ACCESS_TOKEN"},
		{name: "TC-4: missing secret", mutate: func(c *LineConfig) { c.ChannelSecret = "" }, wantErr: "LINE_CHANNEL_SECRET"},
		{name: "TC-5: dry run needs no credentials", mutate: func(c *LineConfig) { c.AccessToken, c.ChannelSecret, c.DryRun = "", "", true }},
		{name: "TC-6: timeout too short", mutate: func(c *LineConfig) { c.Timeout = 10 * time.Millisecond }, wantErr: "LINE_API_TIMEOUT"},
		{name: "TC-7: file size", mutate: func(c *LineConfig) { c.MaxFileSizeMB = 0 }, wantErr: "LINE_MAX_FILE_SIZE_MB"},
		{name: "TC-8: gdrive without credentials", mutate: func(c *LineConfig) { c.FileStorage = FileStorageGDrive }, wantErr: "GDRIVE_CREDENTIALS_FILE"},
		{name: "TC-9: unknown storage", mutate: func(c *LineConfig) { c.FileStorage = "s3" }, wantErr: "LINE_FILE_STORAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLineConfig_CredentialSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))

	t.Run("TC-1: literal", func(t *testing.T) {
		cfg := LineConfig{AccessToken: "tok", AccessTokenFile: path}
		v, err := cfg.AccessTokenSource().Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", v)
	})

	t.Run("TC-2: file", func(t *testing.T) {
		cfg := LineConfig{AccessTokenFile: path}
		v, err := cfg.AccessTokenSource().Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "file-token", v)
	})

	t.Run("TC-3: dry run placeholder", func(t *testing.T) {
		cfg := LineConfig{DryRun: true}
		v, err := cfg.ChannelSecretSource().Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "dry-run", v)
	})

	t.Run("TC-4: nothing configured", func(t *testing.T) {
		cfg := LineConfig{}
		_, err := cfg.ChannelSecretSource().Resolve(context.Background())
		assert.ErrorIs(t, err, credential.ErrEmptyCredential)
	})
}
