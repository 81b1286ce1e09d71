package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Quota reset policies for field change counters
const (
	QuotaResetNever      = "never"
	QuotaResetOnApproval = "on_approval"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	CitizenCollection       string `json:"mongo_citizen_collection"`
	AdminCollection         string `json:"mongo_admin_collection"`
	DocumentCollection      string `json:"mongo_document_collection"`
	ChangeRequestCollection string `json:"mongo_change_request_collection"`
	FieldCounterCollection  string `json:"mongo_field_counter_collection"`

	// Change-request workflow configuration
	MinorChangeLimit int    `json:"minor_change_limit"`
	QuotaResetPolicy string `json:"quota_reset_policy"`

	// Authentication configuration
	OTPTTL         time.Duration `json:"otp_ttl"`
	OTPMaxAttempts int           `json:"otp_max_attempts"`
	SessionTTL     time.Duration `json:"session_ttl"`

	// SMTP configuration (notifications disabled when host is empty)
	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`
	SMTPUser string `json:"smtp_user"`
	SMTPPass string `json:"-"`
	SMTPFrom string `json:"smtp_from"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	minorChangeLimit, err := strconv.Atoi(getEnvOrDefault("MINOR_CHANGE_LIMIT", "2"))
	if err != nil || minorChangeLimit < 0 {
		return fmt.Errorf("invalid MINOR_CHANGE_LIMIT: %v", getEnvOrDefault("MINOR_CHANGE_LIMIT", "2"))
	}

	quotaResetPolicy := getEnvOrDefault("QUOTA_RESET_POLICY", QuotaResetNever)
	if quotaResetPolicy != QuotaResetNever && quotaResetPolicy != QuotaResetOnApproval {
		return fmt.Errorf("invalid QUOTA_RESET_POLICY: %q", quotaResetPolicy)
	}

	otpTTL, err := time.ParseDuration(getEnvOrDefault("OTP_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_TTL: %w", err)
	}

	otpMaxAttempts, err := strconv.Atoi(getEnvOrDefault("OTP_MAX_ATTEMPTS", "3"))
	if err != nil || otpMaxAttempts < 1 {
		return fmt.Errorf("invalid OTP_MAX_ATTEMPTS: %v", getEnvOrDefault("OTP_MAX_ATTEMPTS", "3"))
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "12h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnvOrDefault("SMTP_PORT", "587"))
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "docvault"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		CitizenCollection:       getEnvOrDefault("MONGODB_CITIZEN_COLLECTION", "citizens"),
		AdminCollection:         getEnvOrDefault("MONGODB_ADMIN_COLLECTION", "admins"),
		DocumentCollection:      getEnvOrDefault("MONGODB_DOCUMENT_COLLECTION", "documents"),
		ChangeRequestCollection: getEnvOrDefault("MONGODB_CHANGE_REQUEST_COLLECTION", "change_requests"),
		FieldCounterCollection:  getEnvOrDefault("MONGODB_FIELD_COUNTER_COLLECTION", "field_change_counters"),

		// Change-request workflow configuration
		MinorChangeLimit: minorChangeLimit,
		QuotaResetPolicy: quotaResetPolicy,

		// Authentication configuration
		OTPTTL:         otpTTL,
		OTPMaxAttempts: otpMaxAttempts,
		SessionTTL:     sessionTTL,

		// SMTP configuration
		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: smtpPort,
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom: getEnvOrDefault("SMTP_FROM", "Document Portal <no-reply@portal.gov.example>"),

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
