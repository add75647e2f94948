// 配置加载器测试。
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	agentcontext "github.com/BaSui01/roundtable/agent/context"
	"github.com/BaSui01/roundtable/agent/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredential 避免宿主环境中的凭据影响断言
func clearCredential(t *testing.T) {
	t.Helper()
	t.Setenv(CredentialEnv, "")
	t.Setenv("ROUNDTABLE_LLM_API_KEY", "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	clearCredential(t)
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Scenario.Rounds)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	// 缺少凭据不是启动错误
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	clearCredential(t)
	path := writeFile(t, "roundtable.yaml", `
llm:
  model: gpt-4o-mini
  timeout: 15s
  max_retries: 2
scenario:
  rounds: 5
  rebuttals: 1
  window:
    strategy: sliding_window
    max_messages: 12
  cast:
    presidents:
      - name: Abraham Lincoln
        role: former President
        instruction: You are Abraham Lincoln. Keep it short.
recorder:
  type: sql
  sql:
    driver: sqlite
    dsn: turns.db
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 5, cfg.Scenario.Rounds)
	assert.Equal(t, 1, cfg.Scenario.Rebuttals)
	assert.Equal(t, agentcontext.StrategySlidingWindow, cfg.Scenario.Window.Strategy)
	assert.Equal(t, 12, cfg.Scenario.Window.MaxMessages)
	assert.Equal(t, persistence.StoreTypeSQL, cfg.Recorder.Type)
	assert.Equal(t, "turns.db", cfg.Recorder.SQL.DSN)

	cast := cfg.Scenario.Roster()
	require.Len(t, cast.Presidents, 1)
	assert.Equal(t, "Abraham Lincoln", cast.Presidents[0].Name)
	assert.Len(t, cast.Comedians, 3)

	// 未出现在 YAML 中的字段保持默认值
	assert.Equal(t, "Tell a one-liner joke.", cfg.Scenario.Prompt)
	assert.Equal(t, "https://api.openai.com", cfg.LLM.BaseURL)
}

func TestLoader_LoadFromEnv(t *testing.T) {
	clearCredential(t)
	t.Setenv("ROUNDTABLE_SCENARIO_ROUNDS", "7")
	t.Setenv("ROUNDTABLE_LLM_TIMEOUT", "3s")
	t.Setenv("ROUNDTABLE_LLM_RATE_LIMIT_RPS", "2.5")
	t.Setenv("ROUNDTABLE_TELEMETRY_ENABLED", "true")
	t.Setenv("ROUNDTABLE_RECORDER_TYPE", "redis")
	t.Setenv("ROUNDTABLE_RECORDER_REDIS_HOST", "cache.internal")
	t.Setenv("ROUNDTABLE_RECORDER_SQL_DRIVER", "postgres")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Scenario.Rounds)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 2.5, cfg.LLM.RateLimitRPS, 0.001)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, persistence.StoreTypeRedis, cfg.Recorder.Type)
	// 未打 env tag 的嵌套结构体沿用父级前缀
	assert.Equal(t, "cache.internal", cfg.Recorder.Redis.Host)
	assert.Equal(t, "postgres", cfg.Recorder.SQL.Driver)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	clearCredential(t)
	path := writeFile(t, "roundtable.yaml", "scenario:\n  rounds: 4\nllm:\n  model: from-yaml\n")
	t.Setenv("ROUNDTABLE_LLM_MODEL", "from-env")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scenario.Rounds)
	assert.Equal(t, "from-env", cfg.LLM.Model)
}

func TestLoader_Credential(t *testing.T) {
	t.Run("OPENAI_API_KEY fallback", func(t *testing.T) {
		clearCredential(t)
		t.Setenv(CredentialEnv, "sk-openai")
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, "sk-openai", cfg.LLM.APIKey)
	})

	t.Run("prefixed key wins", func(t *testing.T) {
		clearCredential(t)
		t.Setenv(CredentialEnv, "sk-openai")
		t.Setenv("ROUNDTABLE_LLM_API_KEY", "sk-prefixed")
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, "sk-prefixed", cfg.LLM.APIKey)
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearCredential(t)
		// godotenv 不覆盖已存在的变量，先删除
		require.NoError(t, os.Unsetenv(CredentialEnv))
		t.Cleanup(func() { _ = os.Unsetenv(CredentialEnv) })
		path := writeFile(t, ".env", "OPENAI_API_KEY=sk-from-dotenv\n")

		cfg, err := NewLoader().WithDotEnv(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "sk-from-dotenv", cfg.LLM.APIKey)
	})

	t.Run("missing dotenv ignored", func(t *testing.T) {
		clearCredential(t)
		_, err := NewLoader().WithDotEnv(filepath.Join(t.TempDir(), "absent.env")).Load()
		assert.NoError(t, err)
	})
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	clearCredential(t)
	t.Setenv("RT_SCENARIO_ROUNDS", "9")
	cfg, err := NewLoader().WithEnvPrefix("RT").Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Scenario.Rounds)
}

func TestLoader_WithValidator(t *testing.T) {
	clearCredential(t)
	_, err := NewLoader().WithValidator(func(c *Config) error {
		if c.Metrics.Addr == "" {
			return assert.AnError
		}
		return nil
	}).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoader_Errors(t *testing.T) {
	clearCredential(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "nope.yaml")).Load()
		assert.Error(t, err)
	})
	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "scenario: [unterminated")
		_, err := NewLoader().WithConfigPath(path).Load()
		assert.ErrorContains(t, err, "failed to parse config file")
	})
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("ROUNDTABLE_SCENARIO_ROUNDS", "many")
		_, err := NewLoader().Load()
		assert.ErrorContains(t, err, "ROUNDTABLE_SCENARIO_ROUNDS")
	})
}

// --- Validate 测试 ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"zero rounds", func(c *Config) { c.Scenario.Rounds = 0 }, ""},
		{"negative rounds", func(c *Config) { c.Scenario.Rounds = -1 }, "scenario.rounds"},
		{"negative rebuttals", func(c *Config) { c.Scenario.Rebuttals = -2 }, "scenario.rebuttals"},
		{"negative retries", func(c *Config) { c.LLM.MaxRetries = -1 }, "llm.max_retries"},
		{"sample rate", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "sample_rate"},
		{"recorder", func(c *Config) { c.Recorder.Type = "mongo" }, `unknown recorder type "mongo"`},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "unknown log format"},
		{"window", func(c *Config) { c.Scenario.Window.Strategy = "fifo" }, "unknown window strategy"},
		{"cast", func(c *Config) {
			c.Scenario.Cast.Candidates = c.Scenario.Roster().Candidates[:1]
		}, "exactly 2 candidates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
