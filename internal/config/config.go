package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	CORSAllowedOrigins []string

	// CMS session / access gate
	CMSUsername      string
	CMSPassword      string
	SessionCookieTTL time.Duration

	// Outbound email
	EmailProvider     string // "sendgrid", "ses" or "stub"
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	AdminEmail        string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SESFromEmail       string
	SESFromName        string

	// Public form abuse controls
	FormRateLimit float64
	FormRateBurst int

	// Spreadsheet import
	ImportMaxRows int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),

		CMSUsername:      getEnv("CMS_USERNAME", ""),
		CMSPassword:      getEnv("CMS_PASSWORD", ""),
		SessionCookieTTL: getEnvAsDuration("CMS_SESSION_TTL", 7*24*time.Hour),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "BrandMetro"),
		AdminEmail:        getEnv("ADMIN_NOTIFICATION_EMAIL", ""),

		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "BrandMetro"),

		FormRateLimit: getEnvAsFloat("FORM_RATE_LIMIT", 1),
		FormRateBurst: getEnvAsInt("FORM_RATE_BURST", 5),

		ImportMaxRows: getEnvAsInt("IMPORT_MAX_ROWS", 500),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
