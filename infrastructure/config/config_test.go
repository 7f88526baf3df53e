package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "behaviortrack", cfg.DynamoDBTable)
	assert.Equal(t, 10*time.Minute, cfg.ResolutionDelay)
	assert.Equal(t, time.Hour, cfg.EscalationWindow)
	assert.Equal(t, "America/New_York", cfg.ReferenceTimeZone)
	assert.Equal(t, "templates/behavior-alert.html", cfg.FallbackTemplateKey)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RESOLUTION_DELAY_SECONDS", "120")
	t.Setenv("ESCALATION_WINDOW_MINUTES", "30")
	t.Setenv("REFERENCE_TIME_ZONE", "UTC")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.ResolutionDelay)
	assert.Equal(t, 30*time.Minute, cfg.EscalationWindow)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestValidate_ProductionRequirements(t *testing.T) {
	cfg := &Config{
		Environment:       "production",
		DynamoDBTable:     "behaviortrack",
		ReferenceTimeZone: "UTC",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESCALATION_QUEUE_URL")

	cfg.EscalationQueueURL = "https://sqs.test/queue"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEMPLATE_BUCKET")

	cfg.TemplateBucket = "behaviortrack-templates"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsUnknownTimeZone(t *testing.T) {
	cfg := &Config{Environment: "development", ReferenceTimeZone: "Mars/Olympus"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFERENCE_TIME_ZONE")
}
