package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BaSui01/roundtable/agent/conversation"
	"github.com/BaSui01/roundtable/llm"
	"github.com/BaSui01/roundtable/testutil/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	_ llm.MetricsCollector      = (*Collector)(nil)
	_ conversation.TurnObserver = (*Collector)(nil)
)

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestNewCollector(t *testing.T) {
	collector := NewCollector("test", zap.NewNop())

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.Registry())
	assert.NotNil(t, collector.llmRequestsTotal)
	assert.NotNil(t, collector.llmRequestDuration)
	assert.NotNil(t, collector.llmTokensUsed)
	assert.NotNil(t, collector.dialogueTurnsTotal)
}

func TestNewCollector_IsolatedRegistries(t *testing.T) {
	// 同名 namespace 可重复创建，不会触发重复注册 panic
	assert.NotPanics(t, func() {
		NewCollector("dup", nil)
		NewCollector("dup", nil)
	})
}

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector("test", zap.NewNop())

	c.RecordRequest("openai", "gpt-4o", 500*time.Millisecond, nil)
	c.RecordRequest("openai", "gpt-4o", 100*time.Millisecond, nil)
	c.RecordRequest("openai", "gpt-4o", time.Second, &llm.Error{Code: llm.ErrRateLimited, Message: "slow down"})
	c.RecordRequest("openai", "gpt-4o", time.Second, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.llmRequestsTotal.WithLabelValues("openai", "gpt-4o", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.llmRequestsTotal.WithLabelValues("openai", "gpt-4o", "LLM_RATE_LIMITED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.llmRequestsTotal.WithLabelValues("openai", "gpt-4o", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.llmRequestDuration))
}

func TestCollector_RecordTokens(t *testing.T) {
	c := NewCollector("test", zap.NewNop())

	c.RecordTokens("openai", "gpt-4o", llm.ChatUsage{PromptTokens: 100, CompletionTokens: 40, TotalTokens: 140})
	c.RecordTokens("openai", "gpt-4o", llm.ChatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})

	assert.Equal(t, 110.0, testutil.ToFloat64(c.llmTokensUsed.WithLabelValues("openai", "gpt-4o", "prompt")))
	assert.Equal(t, 45.0, testutil.ToFloat64(c.llmTokensUsed.WithLabelValues("openai", "gpt-4o", "completion")))
}

func TestCollector_ObserveTurn(t *testing.T) {
	c := NewCollector("test", zap.NewNop())

	for i := 0; i < 3; i++ {
		c.ObserveTurn("debate", "candidate")
	}
	c.ObserveTurn("debate", "moderator")

	assert.Equal(t, 3.0, testutil.ToFloat64(c.dialogueTurnsTotal.WithLabelValues("debate", "candidate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dialogueTurnsTotal.WithLabelValues("debate", "moderator")))
}

func TestCollector_MiddlewareAndSession(t *testing.T) {
	c := NewCollector("rt", zap.NewNop())
	p := mocks.NewMockProvider().WithResponse("ok").WithTokenUsage(7, 3)
	wrapped := llm.Wrap(p, llm.NewChain(llm.MetricsMiddleware("mock", c)))

	_, err := wrapped.Completion(context.Background(), &llm.ChatRequest{Model: "gpt-4o"})
	require.NoError(t, err)

	s := conversation.NewSession(conversation.ScenarioSequential, nil, zap.NewNop()).WithObserver(c)
	s.Emit(context.Background(), conversation.Turn{Round: 1, Speaker: "A", Role: conversation.RoleComedian, Text: "x"})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.llmRequestsTotal.WithLabelValues("mock", "gpt-4o", "success")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.llmTokensUsed.WithLabelValues("mock", "gpt-4o", "prompt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dialogueTurnsTotal.WithLabelValues("sequential", "comedian")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("rt", zap.NewNop())
	c.ObserveTurn("jury", "judge")

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `rt_dialogue_turns_total{role="judge",scenario="jury"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRequestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{&llm.Error{Code: llm.ErrMissingCredential}, "LLM_MISSING_CREDENTIAL"},
		{fmt.Errorf("wrapped: %w", &llm.Error{Code: llm.ErrEmptyCompletion}), "LLM_EMPTY_COMPLETION"},
		{context.DeadlineExceeded, "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requestStatus(tt.err))
	}
}
