package config

import (
	"testing"
	"time"

	agentcontext "github.com/BaSui01/roundtable/agent/context"
	"github.com/BaSui01/roundtable/agent/persistence"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestDefaultLLMConfig(t *testing.T) {
	cfg := DefaultLLMConfig()
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "https://api.openai.com", cfg.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.MaxRetries)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestDefaultTelemetryConfig(t *testing.T) {
	cfg := DefaultTelemetryConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "roundtable", cfg.ServiceName)
	assert.InDelta(t, 1.0, cfg.SampleRate, 0.001)
}

func TestDefaultMetricsConfig(t *testing.T) {
	cfg := DefaultMetricsConfig()
	assert.Empty(t, cfg.Addr)
	assert.Equal(t, "roundtable", cfg.Namespace)
}

func TestDefaultScenarioConfig(t *testing.T) {
	cfg := DefaultScenarioConfig()
	assert.Equal(t, 2, cfg.Rounds)
	assert.Equal(t, "Tell a one-liner joke.", cfg.Prompt)
	assert.Equal(t, 2, cfg.Rebuttals)
	assert.Equal(t, agentcontext.StrategyNone, cfg.Window.Strategy)
	assert.False(t, cfg.Window.Enabled())

	cast := cfg.Roster()
	assert.Len(t, cast.Comedians, 3)
	assert.Len(t, cast.Candidates, 2)
}

func TestDefaultRecorder_Off(t *testing.T) {
	assert.Equal(t, persistence.StoreTypeNone, DefaultConfig().Recorder.Type)
}
