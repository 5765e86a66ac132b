package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sitetrack-go/pkg/logger"
)

type Config struct {
	HTTPPort     string
	Env          string
	CORSOrigins  []string
	SeedDemoData bool
	DB           DBConfig
	Identity     IdentityConfig
	Webhook      WebhookConfig
	Blob         BlobConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IdentityConfig points at the hosted identity provider used to verify
// bearer tokens and to resolve the calling user's profile.
type IdentityConfig struct {
	URL            string
	APIKey         string
	AuthTimeout    time.Duration
	SkipAuth       bool
	MockUserID     string
	MockUserEmail  string
	MockUserName   string
	MockUserAvatar string
}

// WebhookConfig carries the shared secret for verifying identity-provider
// lifecycle events. The secret is the base64 part after the "whsec_" prefix.
type WebhookConfig struct {
	SigningSecret string
	Tolerance     time.Duration
}

type BlobConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PathStyle     bool
	PublicBaseURL string
	UploadExpiry  time.Duration
	URLExpiry     time.Duration
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "sitetrack"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Identity: IdentityConfig{
			URL:            getEnv("IDENTITY_URL", ""),
			APIKey:         getEnv("IDENTITY_API_KEY", ""),
			AuthTimeout:    getEnvDuration("IDENTITY_AUTH_TIMEOUT", 5*time.Second),
			SkipAuth:       getEnvBool("AUTH_SKIP", false),
			MockUserID:     getEnv("AUTH_MOCK_USER_ID", "user_mock_000000000001"),
			MockUserEmail:  getEnv("AUTH_MOCK_USER_EMAIL", ""),
			MockUserName:   getEnv("AUTH_MOCK_USER_NAME", ""),
			MockUserAvatar: getEnv("AUTH_MOCK_USER_AVATAR_URL", ""),
		},
		Webhook: WebhookConfig{
			SigningSecret: getEnv("WEBHOOK_SIGNING_SECRET", ""),
			Tolerance:     getEnvDuration("WEBHOOK_TOLERANCE", 5*time.Minute),
		},
		Blob: BlobConfig{
			Bucket:        getEnv("BLOB_S3_BUCKET", ""),
			Region:        getEnv("BLOB_S3_REGION", "us-east-1"),
			Endpoint:      getEnv("BLOB_S3_ENDPOINT", ""),
			PathStyle:     getEnvBool("BLOB_S3_PATH_STYLE", false),
			PublicBaseURL: getEnv("BLOB_PUBLIC_BASE_URL", ""),
			UploadExpiry:  getEnvDuration("BLOB_UPLOAD_EXPIRY", 15*time.Minute),
			URLExpiry:     getEnvDuration("BLOB_URL_EXPIRY", 24*time.Hour),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
