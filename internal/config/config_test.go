package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "APP_ENV",
		"MONGODB_URI", "MONGODB_DB_NAME",
		"AUTH_JWT_SECRET", "AUTH_TOKEN_TTL_HOURS",
		"GOAL_SWEEP_CRON_SCHEDULE", "SNAPSHOT_CRON_SCHEDULE", "EXPORT_CRON_SCHEDULE", "TIMEZONE",
		"EXPO_PUSH_BASE_URL", "EXPO_PUSH_ACCESS_TOKEN",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "farmdesk", cfg.MongoDB.DBName)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "*/15 * * * *", cfg.Notifier.SweepCronSchedule)
	assert.Equal(t, "0 20 * * *", cfg.Notifier.SnapshotCronSchedule)
	assert.Equal(t, "Africa/Conakry", cfg.Notifier.Timezone)
	assert.Empty(t, cfg.Push.BaseURL)
	assert.Empty(t, cfg.Sheets.CredentialsPath)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "24")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "UTC", cfg.Notifier.Timezone)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "soon")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateSheetsPairing(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEET_DATABASE_ID")

	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sheet-id", cfg.Sheets.SpreadsheetID)
}
