package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstChoice_NilResponse(t *testing.T) {
	_, err := FirstChoice(nil)
	require.Error(t, err)
	assert.Equal(t, ErrEmptyCompletion, CodeOf(err))
}

func TestFirstChoice_EmptyChoices(t *testing.T) {
	_, err := FirstChoice(&ChatResponse{Provider: "openai", Choices: []ChatChoice{}})
	require.Error(t, err)
	assert.Equal(t, ErrEmptyCompletion, CodeOf(err))
}

func TestFirstContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "trimmed", content: "  Why did the chicken...  \n", want: "Why did the chicken..."},
		{name: "whitespace only", content: " \n\t ", wantErr: true},
		{name: "empty", content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &ChatResponse{Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: tt.content}}}}
			got, err := FirstContent(resp)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrEmptyCompletion, CodeOf(err))
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestError_UnwrapAndRetryable(t *testing.T) {
	cause := assert.AnError
	err := &Error{Code: ErrUpstreamError, Message: "bad gateway", Retryable: true, Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(err))
	assert.Contains(t, err.Error(), "LLM_UPSTREAM_ERROR")
	assert.False(t, IsRetryable(assert.AnError))
	assert.Equal(t, ErrorCode(""), CodeOf(assert.AnError))
}
