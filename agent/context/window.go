package context

import (
	"context"
	"fmt"
	"strings"

	"github.com/BaSui01/roundtable/llm"
	"github.com/BaSui01/roundtable/llm/tokenizer"
	"go.uber.org/zap"
)

// WindowStrategy defines the context window management strategy.
type WindowStrategy string

const (
	// StrategyNone sends the full transcript.
	StrategyNone WindowStrategy = "none"
	// StrategySlidingWindow keeps the most recent N messages.
	StrategySlidingWindow WindowStrategy = "sliding_window"
	// StrategyTokenBudget trims messages by token budget.
	StrategyTokenBudget WindowStrategy = "token_budget"
	// StrategySummarize compresses old messages via LLM summarization.
	StrategySummarize WindowStrategy = "summarize"
)

// WindowConfig configures the window manager.
// The system entry is always kept regardless of limits.
type WindowConfig struct {
	Strategy      WindowStrategy `json:"strategy" yaml:"strategy"`
	MaxTokens     int            `json:"max_tokens" yaml:"max_tokens"`         // Token budget ceiling
	MaxMessages   int            `json:"max_messages" yaml:"max_messages"`     // Maximum non-system message count
	ReserveTokens int            `json:"reserve_tokens" yaml:"reserve_tokens"` // Tokens reserved for new reply
	KeepLastN     int            `json:"keep_last_n" yaml:"keep_last_n"`       // Always preserve last N messages
}

// Enabled reports whether the config bounds anything at all.
func (c WindowConfig) Enabled() bool {
	switch c.Strategy {
	case StrategySlidingWindow:
		return c.MaxMessages > 0
	case StrategyTokenBudget, StrategySummarize:
		return c.MaxTokens > 0
	default:
		return false
	}
}

// Summarizer compresses messages into a summary string via LLM.
// Optional. When nil, the Summarize strategy falls back to TokenBudget.
type Summarizer interface {
	Summarize(ctx context.Context, messages []llm.Message) (string, error)
}

// WindowStatus reports the current state of the context window.
type WindowStatus struct {
	TotalTokens  int  `json:"total_tokens"`
	MessageCount int  `json:"message_count"`
	MaxTokens    int  `json:"max_tokens"`
	OverBudget   bool `json:"over_budget"`
}

// WindowManager implements automatic context window management.
// It satisfies the agent.ContextManager interface.
type WindowManager struct {
	config     WindowConfig
	tokenizer  tokenizer.Tokenizer
	summarizer Summarizer
	logger     *zap.Logger
}

// NewWindowManager creates a WindowManager.
// tok may be nil (defaults to the offline estimator).
// summarizer may be nil (Summarize strategy falls back to TokenBudget).
func NewWindowManager(config WindowConfig, tok tokenizer.Tokenizer, summarizer Summarizer, logger *zap.Logger) *WindowManager {
	if tok == nil {
		tok = tokenizer.NewEstimatorTokenizer("", 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WindowManager{
		config:     config,
		tokenizer:  tok,
		summarizer: summarizer,
		logger:     logger.With(zap.String("component", "context_window")),
	}
}

// countTokens counts tokens for a string, falling back to len/4 on tokenizer errors.
func (w *WindowManager) countTokens(text string) int {
	n, err := w.tokenizer.CountTokens(text)
	if err == nil {
		return n
	}
	n = len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}

// messageTokens estimates tokens for a single message.
func (w *WindowManager) messageTokens(msg llm.Message) int {
	tokens := w.countTokens(msg.Content)
	if msg.Name != "" {
		tokens += w.countTokens(msg.Name)
	}
	// per-message overhead
	return tokens + 4
}

// EstimateTokens returns the total token count across all messages.
func (w *WindowManager) EstimateTokens(messages []llm.Message) int {
	total := 0
	for _, m := range messages {
		total += w.messageTokens(m)
	}
	return total
}

func (w *WindowManager) budget() int {
	b := w.config.MaxTokens - w.config.ReserveTokens
	if b < 0 {
		return 0
	}
	return b
}

// GetStatus returns the current window state.
func (w *WindowManager) GetStatus(messages []llm.Message) WindowStatus {
	total := w.EstimateTokens(messages)
	return WindowStatus{
		TotalTokens:  total,
		MessageCount: len(messages),
		MaxTokens:    w.budget(),
		OverBudget:   w.config.MaxTokens > 0 && total > w.budget(),
	}
}

// PrepareMessages trims messages according to the configured strategy.
// The input slice is never modified.
func (w *WindowManager) PrepareMessages(ctx context.Context, messages []llm.Message) ([]llm.Message, error) {
	if len(messages) == 0 || !w.config.Enabled() {
		return messages, nil
	}

	var (
		out []llm.Message
		err error
	)
	switch w.config.Strategy {
	case StrategySlidingWindow:
		out = w.slidingWindow(messages)
	case StrategySummarize:
		out, err = w.summarize(ctx, messages)
	default:
		out = w.tokenBudget(messages)
	}
	if err != nil {
		return nil, err
	}
	if len(out) < len(messages) {
		w.logger.Debug("transcript view trimmed",
			zap.String("strategy", string(w.config.Strategy)),
			zap.Int("before", len(messages)),
			zap.Int("after", len(out)),
		)
	}
	return out, nil
}

// splitSystemAndOther separates system messages from the rest.
func splitSystemAndOther(msgs []llm.Message) (system, other []llm.Message) {
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			system = append(system, m)
		} else {
			other = append(other, m)
		}
	}
	return
}

// slidingWindow keeps system messages + the last N non-system messages.
// MaxMessages 作为非系统消息的上限，KeepLastN 作为下限。
func (w *WindowManager) slidingWindow(messages []llm.Message) []llm.Message {
	system, other := splitSystemAndOther(messages)

	limit := w.config.MaxMessages
	if w.config.KeepLastN > 0 && limit < w.config.KeepLastN {
		limit = w.config.KeepLastN
	}
	if limit >= len(other) {
		return append(system, other...)
	}
	return append(system, other[len(other)-limit:]...)
}

// tokenBudget keeps messages from newest to oldest within the token budget.
// 从最新的消息往回累计，第一条放不下的消息之前全部丢弃，避免出现跳跃的历史。
func (w *WindowManager) tokenBudget(messages []llm.Message) []llm.Message {
	budget := w.budget()
	system, other := splitSystemAndOther(messages)

	used := 0
	for _, m := range system {
		used += w.messageTokens(m)
	}

	keepN := w.config.KeepLastN
	if keepN > len(other) {
		keepN = len(other)
	}

	start := len(other)
	for i := len(other) - 1; i >= 0; i-- {
		cost := w.messageTokens(other[i])
		inKeepZone := (len(other) - 1 - i) < keepN
		if !inKeepZone && used+cost > budget {
			break
		}
		used += cost
		start = i
	}

	return append(system, other[start:]...)
}

// summarize compresses old messages via LLM summarization.
// Falls back to tokenBudget when no summarizer is configured or it fails.
func (w *WindowManager) summarize(ctx context.Context, messages []llm.Message) ([]llm.Message, error) {
	if w.summarizer == nil {
		return w.tokenBudget(messages), nil
	}
	if w.EstimateTokens(messages) <= w.budget() {
		return messages, nil
	}

	system, other := splitSystemAndOther(messages)

	keepN := w.config.KeepLastN
	if keepN <= 0 {
		keepN = 2
	}
	if keepN > len(other) {
		keepN = len(other)
	}

	toSummarize := other[:len(other)-keepN]
	tail := other[len(other)-keepN:]
	if len(toSummarize) == 0 {
		return append(system, tail...), nil
	}

	summary, err := w.summarizer.Summarize(ctx, toSummarize)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.logger.Warn("summarizer failed, falling back to token budget", zap.Error(err))
		return w.tokenBudget(messages), nil
	}

	result := make([]llm.Message, 0, len(system)+1+len(tail))
	result = append(result, system...)
	result = append(result, llm.Message{Role: llm.RoleAssistant, Content: summary})
	result = append(result, tail...)
	return result, nil
}

// ProviderSummarizer 用同一个 Provider 把较早的对话压缩成一段摘要。
type ProviderSummarizer struct {
	Provider  llm.Provider
	Model     string
	MaxTokens int
}

func (s *ProviderSummarizer) Summarize(ctx context.Context, messages []llm.Message) (string, error) {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}
	resp, err := s.Provider.Completion(ctx, &llm.ChatRequest{
		Model: s.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "Summarize the following conversation in a few sentences, keeping who said what."},
			{Role: llm.RoleUser, Content: b.String()},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize %d messages: %w", len(messages), err)
	}
	text, err := llm.FirstContent(resp)
	if err != nil {
		return "", err
	}
	return "Earlier in the conversation: " + text, nil
}
