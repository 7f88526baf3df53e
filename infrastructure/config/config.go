package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	AWSRegion   string

	// DynamoDB
	DynamoDBTable string

	// Scheduling
	EscalationQueueURL string
	ResolutionDelay    time.Duration
	EscalationWindow   time.Duration

	// Messaging
	EventBusName string

	// Email
	TemplateBucket      string
	FallbackTemplateKey string
	EmailSender         string

	// Time-zone alignment for calendar-day windows
	ReferenceTimeZone string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		AWSRegion:   getEnv("AWS_REGION", "us-west-2"),

		DynamoDBTable: getEnv("TABLE_NAME", "behaviortrack"),

		EscalationQueueURL: getEnv("ESCALATION_QUEUE_URL", ""),
		ResolutionDelay:    time.Duration(getEnvInt("RESOLUTION_DELAY_SECONDS", 600)) * time.Second,
		EscalationWindow:   time.Duration(getEnvInt("ESCALATION_WINDOW_MINUTES", 60)) * time.Minute,

		EventBusName: getEnv("EVENT_BUS_NAME", "behaviortrack-events"),

		TemplateBucket:      getEnv("TEMPLATE_BUCKET", ""),
		FallbackTemplateKey: getEnv("FALLBACK_TEMPLATE_KEY", "templates/behavior-alert.html"),
		EmailSender:         getEnv("EMAIL_SENDER", "alerts@behaviortrack.io"),

		ReferenceTimeZone: getEnv("REFERENCE_TIME_ZONE", "America/New_York"),

		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.EscalationQueueURL == "" {
			return fmt.Errorf("ESCALATION_QUEUE_URL is required in production")
		}
		if c.TemplateBucket == "" {
			return fmt.Errorf("TEMPLATE_BUCKET is required in production")
		}
	}
	if _, err := time.LoadLocation(c.ReferenceTimeZone); err != nil {
		return fmt.Errorf("invalid REFERENCE_TIME_ZONE %q: %w", c.ReferenceTimeZone, err)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves the reference time zone. Validate has already checked
// it parses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReferenceTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
