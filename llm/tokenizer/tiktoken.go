package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BaSui01/roundtable/llm"
	"github.com/pkoukk/tiktoken-go"
)

// TiktokenTokenizer 为 OpenAI 系列模型提供精确计数.
// 编码数据在首次使用时加载（可能需要网络）。
type TiktokenTokenizer struct {
	model     string
	encoding  string
	maxTokens int
	enc       *tiktoken.Tiktoken
	once      sync.Once
	initErr   error
}

type encodingInfo struct {
	encoding  string
	maxTokens int
}

// 按前缀从长到短匹配，gpt-4o 必须排在 gpt-4 之前
var modelEncodings = []struct {
	prefix string
	info   encodingInfo
}{
	{"gpt-4o", encodingInfo{"o200k_base", 128000}},
	{"gpt-4-turbo", encodingInfo{"cl100k_base", 128000}},
	{"gpt-4", encodingInfo{"cl100k_base", 8192}},
	{"gpt-3.5-turbo", encodingInfo{"cl100k_base", 16385}},
}

func lookupEncoding(model string) encodingInfo {
	for _, m := range modelEncodings {
		if strings.HasPrefix(model, m.prefix) {
			return m.info
		}
	}
	return encodingInfo{"cl100k_base", 8192}
}

// NewTiktokenTokenizer creates a tiktoken-backed tokenizer for model.
func NewTiktokenTokenizer(model string) (*TiktokenTokenizer, error) {
	info := lookupEncoding(model)
	return &TiktokenTokenizer{
		model:     model,
		encoding:  info.encoding,
		maxTokens: info.maxTokens,
	}, nil
}

func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = fmt.Errorf("init tiktoken encoding %s: %w", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *TiktokenTokenizer) CountTokens(text string) (int, error) {
	if err := t.init(); err != nil {
		return 0, err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *TiktokenTokenizer) CountMessages(messages []llm.Message) (int, error) {
	if err := t.init(); err != nil {
		return 0, err
	}

	total := 0
	for _, msg := range messages {
		// <|start|>role\n content<|end|>\n
		total += messageOverhead
		total += len(t.enc.Encode(msg.Content, nil, nil))
		total += len(t.enc.Encode(string(msg.Role), nil, nil))
		if msg.Name != "" {
			total += len(t.enc.Encode(msg.Name, nil, nil))
		}
	}
	return total + replyPriming, nil
}

func (t *TiktokenTokenizer) MaxTokens() int { return t.maxTokens }

func (t *TiktokenTokenizer) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}
