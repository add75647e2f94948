package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/BaSui01/roundtable/llm"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sampling 是每次补全调用携带的模型与采样参数。零值字段不下发。
type Sampling struct {
	Model            string  `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature      float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens        int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	FrequencyPenalty float32 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
}

// ContextManager bounds the view of a transcript that is sent upstream.
// agent/context.WindowManager satisfies it.
type ContextManager interface {
	PrepareMessages(ctx context.Context, messages []llm.Message) ([]llm.Message, error)
}

// Agent 是一个带 persona 与私有 transcript 的对话参与者。
// 同一个 Agent 的回合串行执行；不同 Agent 可以并发使用。
type Agent struct {
	persona    Persona
	transcript *Transcript
	provider   llm.Provider
	sampling   Sampling
	contextMgr ContextManager
	logger     *zap.Logger

	turnMu sync.Mutex
}

// Name returns the persona name.
func (a *Agent) Name() string { return a.persona.Name() }

// Persona returns the agent's persona.
func (a *Agent) Persona() Persona { return a.persona }

// Sampling returns the sampling parameters used for every call.
func (a *Agent) Sampling() Sampling { return a.sampling }

// Messages returns a copy of the agent's transcript.
func (a *Agent) Messages() []llm.Message { return a.transcript.Messages() }

// Transcript exposes the underlying transcript for inspection.
func (a *Agent) Transcript() *Transcript { return a.transcript }

// Respond appends prompt as a user entry, sends the transcript upstream and
// appends the reply. On failure the user entry is removed again and the
// provider error is returned unchanged.
func (a *Agent) Respond(ctx context.Context, prompt string) (string, error) {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	before := a.transcript.Len()
	a.transcript.append(llm.Message{Role: llm.RoleUser, Content: prompt})

	reply, err := a.complete(ctx, a.transcript.Messages())
	if err != nil {
		a.transcript.truncate(before)
		return "", err
	}
	a.transcript.append(llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// Act takes a self-driven turn: no user entry, the reply is produced from
// the transcript alone. A leading "<Name>" or "<Name>:" echo is stripped.
func (a *Agent) Act(ctx context.Context) (string, error) {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	reply, err := a.complete(ctx, a.transcript.Messages())
	if err != nil {
		return "", err
	}
	reply = StripSpeakerPrefix(a.Name(), reply)
	a.transcript.append(llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// Ask sends [system, user] without touching the transcript.
func (a *Agent) Ask(ctx context.Context, prompt string) (string, error) {
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: a.persona.Instruction()},
		{Role: llm.RoleUser, Content: prompt},
	}
	return a.complete(ctx, msgs)
}

// Hear records another speaker's utterance as "<speaker>: <text>".
func (a *Agent) Hear(speaker, text string) {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()
	a.transcript.append(llm.Message{
		Role:    llm.RoleAssistant,
		Name:    speaker,
		Content: fmt.Sprintf("%s: %s", speaker, text),
	})
}

func (a *Agent) complete(ctx context.Context, msgs []llm.Message) (string, error) {
	if a.contextMgr != nil {
		prepared, err := a.contextMgr.PrepareMessages(ctx, msgs)
		if err != nil {
			return "", fmt.Errorf("prepare context for %s: %w", a.Name(), err)
		}
		msgs = prepared
	}

	req := &llm.ChatRequest{
		TraceID:          uuid.NewString(),
		Model:            a.sampling.Model,
		Messages:         msgs,
		Temperature:      a.sampling.Temperature,
		MaxTokens:        a.sampling.MaxTokens,
		FrequencyPenalty: a.sampling.FrequencyPenalty,
		Metadata:         map[string]string{"agent": a.Name()},
	}

	a.logger.Debug("requesting completion",
		zap.String("trace_id", req.TraceID),
		zap.Int("messages", len(msgs)),
	)

	resp, err := a.provider.Completion(ctx, req)
	if err != nil {
		return "", err
	}
	return llm.FirstContent(resp)
}

// StripSpeakerPrefix removes a leading copy of name and any spaces or colons after it.
func StripSpeakerPrefix(name, reply string) string {
	if name == "" || !strings.HasPrefix(reply, name) {
		return reply
	}
	return strings.Trim(reply[len(name):], " :")
}
