// MockProvider 的 LLM 提供商测试模拟实现。
//
// 支持固定响应、按 Agent 脚本化响应、延迟与错误注入场景。
package mocks

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/BaSui01/roundtable/llm"
)

// ReplyFunc 根据请求生成回复文本。agent 取自 req.Metadata["agent"]。
type ReplyFunc func(agent string, req *llm.ChatRequest) (string, error)

// --- MockProvider 结构 ---

// MockProvider 是 LLM Provider 的模拟实现，可并发调用
type MockProvider struct {
	mu sync.Mutex

	// 响应配置
	response  string
	err       error
	replyFunc ReplyFunc
	delayFunc func(agent string) time.Duration

	// Token 使用统计
	promptTokens     int
	completionTokens int

	// 调用记录
	calls []MockProviderCall

	// 行为控制
	delay     time.Duration
	failAfter int
	callCount int
}

// MockProviderCall 记录单次调用
type MockProviderCall struct {
	Agent    string
	Request  *llm.ChatRequest
	Response *llm.ChatResponse
	Error    error
}

// --- 构造函数和 Builder 方法 ---

// NewMockProvider 创建新的 MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		response:         "Mock response",
		promptTokens:     10,
		completionTokens: 20,
	}
}

// WithResponse 设置固定响应内容
func (m *MockProvider) WithResponse(response string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	return m
}

// WithError 设置返回错误
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithReplyFunc 设置按请求生成回复的函数
func (m *MockProvider) WithReplyFunc(fn ReplyFunc) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replyFunc = fn
	return m
}

// WithTokenUsage 设置 Token 使用量
func (m *MockProvider) WithTokenUsage(prompt, completion int) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promptTokens = prompt
	m.completionTokens = completion
	return m
}

// WithDelay 设置固定响应延迟
func (m *MockProvider) WithDelay(d time.Duration) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithDelayFunc 按 Agent 设置延迟，用于模拟完成顺序错位
func (m *MockProvider) WithDelayFunc(fn func(agent string) time.Duration) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delayFunc = fn
	return m
}

// WithFailAfter 设置在第 N 次调用后失败
func (m *MockProvider) WithFailAfter(n int) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter = n
	return m
}

// --- Provider 接口实现 ---

// Name 返回 Provider 名称
func (m *MockProvider) Name() string {
	return "mock"
}

// Completion 生成响应
func (m *MockProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	agent := req.Metadata["agent"]

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	failAfter, presetErr, replyFunc, response := m.failAfter, m.err, m.replyFunc, m.response
	delay := m.delay
	if m.delayFunc != nil {
		delay = m.delayFunc(agent)
	}
	usage := llm.ChatUsage{
		PromptTokens:     m.promptTokens,
		CompletionTokens: m.completionTokens,
		TotalTokens:      m.promptTokens + m.completionTokens,
	}
	m.mu.Unlock()

	// 锁外等待，保证并发调用真正并行
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.record(MockProviderCall{Agent: agent, Request: req, Error: ctx.Err()})
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if failAfter > 0 && n > failAfter {
		err := errors.New("mock provider: configured to fail after N calls")
		m.record(MockProviderCall{Agent: agent, Request: req, Error: err})
		return nil, err
	}
	if presetErr != nil {
		m.record(MockProviderCall{Agent: agent, Request: req, Error: presetErr})
		return nil, presetErr
	}

	content := response
	if replyFunc != nil {
		var err error
		content, err = replyFunc(agent, req)
		if err != nil {
			m.record(MockProviderCall{Agent: agent, Request: req, Error: err})
			return nil, err
		}
	}

	resp := &llm.ChatResponse{
		ID:       "mock-response-id",
		Provider: "mock",
		Model:    req.Model,
		Choices: []llm.ChatChoice{{
			Index:        0,
			FinishReason: "stop",
			Message:      llm.Message{Role: llm.RoleAssistant, Content: content},
		}},
		Usage:     usage,
		CreatedAt: time.Now(),
	}
	m.record(MockProviderCall{Agent: agent, Request: req, Response: resp})
	return resp, nil
}

func (m *MockProvider) record(call MockProviderCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// --- 调用记录查询 ---

// GetCalls 返回所有调用记录（按完成顺序）
func (m *MockProvider) GetCalls() []MockProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockProviderCall(nil), m.calls...)
}

// GetCallsFor 返回指定 Agent 的调用记录
func (m *MockProvider) GetCallsFor(agent string) []MockProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockProviderCall
	for _, c := range m.calls {
		if c.Agent == agent {
			out = append(out, c)
		}
	}
	return out
}

// GetCallCount 返回调用次数
func (m *MockProvider) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// GetLastCall 返回最后一次调用
func (m *MockProvider) GetLastCall() *MockProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	c := m.calls[len(m.calls)-1]
	return &c
}

// Reset 重置调用记录
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.callCount = 0
}

// --- 预设 MockProvider 工厂 ---

// NewSuccessProvider 创建总是成功的 Provider
func NewSuccessProvider(response string) *MockProvider {
	return NewMockProvider().WithResponse(response)
}

// NewErrorProvider 创建总是失败的 Provider
func NewErrorProvider(err error) *MockProvider {
	return NewMockProvider().WithError(err)
}

// NewEchoProvider 创建回显 "<agent>#<n>" 的 Provider，n 为该 Agent 的第几次调用
func NewEchoProvider() *MockProvider {
	counts := make(map[string]int)
	var mu sync.Mutex
	return NewMockProvider().WithReplyFunc(func(agent string, _ *llm.ChatRequest) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		counts[agent]++
		return agent + "#" + strconv.Itoa(counts[agent]), nil
	})
}
