// =============================================================================
// 📦 测试数据工厂 - 角色智能体与对话消息
// =============================================================================
// 提供预定义的角色、智能体与对话消息，用于测试
// =============================================================================
package fixtures

import (
	"fmt"
	"testing"

	"github.com/BaSui01/roundtable/agent"
	"github.com/BaSui01/roundtable/llm"
)

// ComedianNames 三位喜剧演员
var ComedianNames = []string{"Groucho Marx", "George Carlin", "Rodney Dangerfield"}

// PresidentNames 三位前总统
var PresidentNames = []string{"Ronald Reagan", "Richard Nixon", "Jimmy Carter"}

// AudienceNames 三组观众
var AudienceNames = []string{"Liberal Democrats", "Conservatives", "Independents"}

// =============================================================================
// 🤖 Agent 工厂
// =============================================================================

// NewAgent 用给定 Provider 构造一个喜剧演员角色的 Agent
func NewAgent(t testing.TB, p llm.Provider, name string) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgentBuilder(agent.ComedianPersona(name, "test humor")).
		WithProvider(p).
		WithSampling(agent.Sampling{Model: "gpt-4o"}).
		Build()
	if err != nil {
		t.Fatalf("build agent %s: %v", name, err)
	}
	return a
}

// NewAgents 按名字批量构造 Agent，共享同一个 Provider
func NewAgents(t testing.TB, p llm.Provider, names ...string) []*agent.Agent {
	t.Helper()
	out := make([]*agent.Agent, len(names))
	for i, n := range names {
		out[i] = NewAgent(t, p, n)
	}
	return out
}

// NewPresident 构造共享历史场景的总统 Agent，指令与内置阵容同型
func NewPresident(t testing.TB, p llm.Provider, name string) *agent.Agent {
	t.Helper()
	instruction := fmt.Sprintf("You are %s, the former President. Respond with one or two lines as %s without mentioning your name.", name, name)
	a, err := agent.NewAgentBuilder(agent.NewPersona(name, "former President", instruction)).
		WithProvider(p).
		Build()
	if err != nil {
		t.Fatalf("build president %s: %v", name, err)
	}
	return a
}

// =============================================================================
// 💬 消息工厂
// =============================================================================

// SystemMessage 创建系统消息
func SystemMessage(content string) llm.Message {
	return llm.Message{Role: llm.RoleSystem, Content: content}
}

// UserMessage 创建用户消息
func UserMessage(content string) llm.Message {
	return llm.Message{Role: llm.RoleUser, Content: content}
}

// AssistantMessage 创建助手消息
func AssistantMessage(content string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, Content: content}
}

// HeardMessage 创建广播条目，与 Agent.Hear 写入的格式一致
func HeardMessage(speaker, text string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, Name: speaker, Content: speaker + ": " + text}
}

// LongConversation 生成指定轮数的广播对话
func LongConversation(instruction string, turns int) []llm.Message {
	msgs := []llm.Message{SystemMessage(instruction)}
	for i := 0; i < turns; i++ {
		speaker := PresidentNames[i%len(PresidentNames)]
		msgs = append(msgs, HeardMessage(speaker, fmt.Sprintf("line %d", i)))
	}
	return msgs
}
