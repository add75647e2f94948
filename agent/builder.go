package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BaSui01/roundtable/llm"
	"go.uber.org/zap"
)

// AgentBuilder 提供流式构建 Agent 的能力
// 支持链式调用，错误在 Build 时统一返回
type AgentBuilder struct {
	persona    Persona
	provider   llm.Provider
	sampling   Sampling
	contextMgr ContextManager
	logger     *zap.Logger

	errors []error
}

// NewAgentBuilder 创建 Agent 构建器
func NewAgentBuilder(persona Persona) *AgentBuilder {
	return &AgentBuilder{
		persona: persona,
		errors:  make([]error, 0),
	}
}

// WithProvider 设置 LLM Provider
func (b *AgentBuilder) WithProvider(provider llm.Provider) *AgentBuilder {
	if provider == nil {
		b.errors = append(b.errors, fmt.Errorf("provider cannot be nil"))
		return b
	}
	b.provider = provider
	return b
}

// WithSampling 设置模型与采样参数
func (b *AgentBuilder) WithSampling(s Sampling) *AgentBuilder {
	if s.Temperature < 0 || s.Temperature > 2 {
		b.errors = append(b.errors, fmt.Errorf("%w: temperature %.2f out of range [0,2]", ErrConfigInvalid, s.Temperature))
		return b
	}
	if s.MaxTokens < 0 {
		b.errors = append(b.errors, fmt.Errorf("%w: max_tokens must be >= 0", ErrConfigInvalid))
		return b
	}
	b.sampling = s
	return b
}

// WithContextManager 设置上下文窗口管理器，nil 表示发送完整 transcript
func (b *AgentBuilder) WithContextManager(cm ContextManager) *AgentBuilder {
	b.contextMgr = cm
	return b
}

// WithLogger 设置日志器
func (b *AgentBuilder) WithLogger(logger *zap.Logger) *AgentBuilder {
	b.logger = logger
	return b
}

// Build 构建 Agent
func (b *AgentBuilder) Build() (*Agent, error) {
	if len(b.errors) > 0 {
		return nil, errors.Join(b.errors...)
	}
	if b.provider == nil {
		return nil, ErrProviderNotSet
	}
	if strings.TrimSpace(b.persona.Name()) == "" || strings.TrimSpace(b.persona.Instruction()) == "" {
		return nil, ErrPersonaInvalid
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Agent{
		persona:    b.persona,
		transcript: NewTranscript(b.persona.Instruction()),
		provider:   b.provider,
		sampling:   b.sampling,
		contextMgr: b.contextMgr,
		logger:     logger.With(zap.String("component", "agent"), zap.String("agent", b.persona.Name())),
	}, nil
}

// MustBuild 构建 Agent，失败时 panic。仅用于内置阵容与测试。
func (b *AgentBuilder) MustBuild() *Agent {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
