package agent

import (
	"sync"

	"github.com/BaSui01/roundtable/llm"
)

// Transcript 是单个 Agent 的有序消息历史。
// 第一条永远是 persona 指令（system），之后只追加。
type Transcript struct {
	mu      sync.RWMutex
	entries []llm.Message
}

// NewTranscript seeds a transcript with one system entry.
func NewTranscript(instruction string) *Transcript {
	return &Transcript{
		entries: []llm.Message{{Role: llm.RoleSystem, Content: instruction}},
	}
}

func (t *Transcript) append(msg llm.Message) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, msg)
	return len(t.entries)
}

// truncate drops entries past n. The system entry is never removed.
func (t *Transcript) truncate(n int) {
	if n < 1 {
		n = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < len(t.entries) {
		clear(t.entries[n:])
		t.entries = t.entries[:n]
	}
}

// Len returns the number of entries including the system seed.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Messages returns a copy of all entries in chronological order.
func (t *Transcript) Messages() []llm.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]llm.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the most recent entry.
func (t *Transcript) Last() llm.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.entries[len(t.entries)-1]
}
