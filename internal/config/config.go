package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Auth     AuthConfig
	Notifier NotifierConfig
	Push     PushConfig
	Sheets   SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
	Env  string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NotifierConfig holds goal notifier and scheduler settings.
type NotifierConfig struct {
	SweepCronSchedule    string
	SnapshotCronSchedule string
	ExportCronSchedule   string
	Timezone             string
}

// PushConfig contains settings for the Expo push delivery client.
// Push delivery is disabled entirely when BaseURL is empty.
type PushConfig struct {
	BaseURL string
	Token   string
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
// Export is disabled when CredentialsPath is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTLHours, err := strconv.Atoi(getenvWithDefault("AUTH_TOKEN_TTL_HOURS", "72"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL_HOURS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
			Env:  getenvWithDefault("APP_ENV", "production"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmdesk"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			TokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
		},
		Notifier: NotifierConfig{
			SweepCronSchedule:    getenvWithDefault("GOAL_SWEEP_CRON_SCHEDULE", "*/15 * * * *"),
			SnapshotCronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			ExportCronSchedule:   getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:             getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		Push: PushConfig{
			BaseURL: os.Getenv("EXPO_PUSH_BASE_URL"),
			Token:   os.Getenv("EXPO_PUSH_ACCESS_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL_HOURS must be positive")
	}

	if c.Notifier.SweepCronSchedule == "" {
		return errors.New("GOAL_SWEEP_CRON_SCHEDULE must be provided")
	}

	if c.Notifier.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when sheets export is enabled")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
