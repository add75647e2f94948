package tokenizer

import (
	"fmt"

	"github.com/BaSui01/roundtable/llm"
)

// Tokenizer 是统一的 token 计数接口.
type Tokenizer interface {
	// CountTokens 返回给定文本的 token 数.
	CountTokens(text string) (int, error)

	// CountMessages 返回消息列表的总 token 数,
	// 包括每条消息的开销（角色标记、分隔符等）。
	CountMessages(messages []llm.Message) (int, error)

	// MaxTokens 返回模型的最大上下文长度.
	MaxTokens() int

	// Name 返回分词器的名称.
	Name() string
}

const (
	KindEstimator = "estimator"
	KindTiktoken  = "tiktoken"
)

// New 按 kind 构造分词器；空 kind 等同 estimator.
func New(kind, model string) (Tokenizer, error) {
	switch kind {
	case "", KindEstimator:
		return NewEstimatorTokenizer(model, 0), nil
	case KindTiktoken:
		return NewTiktokenTokenizer(model)
	default:
		return nil, fmt.Errorf("unknown tokenizer kind %q", kind)
	}
}

// messageOverhead 每条消息的固定开销，以及对话结束的开销.
const (
	messageOverhead = 4
	replyPriming    = 3
)
