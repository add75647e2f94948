// =============================================================================
// 📦 roundtable 默认配置
// =============================================================================
package config

import (
	"time"

	agentcontext "github.com/BaSui01/roundtable/agent/context"
	"github.com/BaSui01/roundtable/agent/conversation"
	"github.com/BaSui01/roundtable/agent/deliberation"
	"github.com/BaSui01/roundtable/agent/persistence"
	"github.com/BaSui01/roundtable/agent/roster"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		LLM:       DefaultLLMConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Metrics:   DefaultMetricsConfig(),
		Recorder:  persistence.DefaultStoreConfig(),
		Scenario:  DefaultScenarioConfig(),
	}
}

// DefaultLLMConfig 返回默认 LLM 配置
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		BaseURL: "https://api.openai.com",
		Model:   roster.DefaultModel,
		Timeout: 60 * time.Second,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "warn",
		Format: "console",
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "roundtable",
		SampleRate:   1.0,
		Insecure:     true,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Namespace: "roundtable"}
}

// DefaultScenarioConfig 返回默认场景参数
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Rounds:    2,
		Prompt:    conversation.DefaultPrompt,
		Rebuttals: deliberation.DefaultRebuttals,
		Window:    agentcontext.WindowConfig{Strategy: agentcontext.StrategyNone},
	}
}
