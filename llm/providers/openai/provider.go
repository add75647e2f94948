package openai

import (
	"net/http"

	"github.com/BaSui01/roundtable/llm/providers"
	"github.com/BaSui01/roundtable/llm/providers/openaicompat"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL 是 OpenAI 官方 API 地址.
	DefaultBaseURL = "https://api.openai.com"
	// DefaultModel 是未显式配置模型时使用的模型.
	DefaultModel = "gpt-4o"
)

// OpenAIProvider 实现 OpenAI LLM 提供者，只在 openaicompat 之上补充默认值和 Organization header.
type OpenAIProvider struct {
	*openaicompat.Provider
	openaiCfg providers.OpenAIConfig
}

// NewOpenAIProvider 创建新的 OpenAI 提供者实例. APIKey 为空时同样返回可用实例.
func NewOpenAIProvider(cfg providers.OpenAIConfig, logger *zap.Logger) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	p := &OpenAIProvider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName:  "openai",
			APIKey:        cfg.APIKey,
			BaseURL:       cfg.BaseURL,
			DefaultModel:  cfg.Model,
			FallbackModel: DefaultModel,
			Timeout:       cfg.Timeout,
		}, logger),
		openaiCfg: cfg,
	}

	p.SetBuildHeaders(func(req *http.Request, apiKey string) {
		providers.BearerTokenHeaders(req, apiKey)
		if cfg.Organization != "" {
			req.Header.Set("OpenAI-Organization", cfg.Organization)
		}
	})

	return p
}
