package llm

import (
	"fmt"
	"strings"
)

// FirstChoice safely returns the first choice from a ChatResponse.
// Returns an ErrEmptyCompletion error if the response is nil or has no choices.
func FirstChoice(resp *ChatResponse) (ChatChoice, error) {
	if resp == nil {
		return ChatChoice{}, &Error{Code: ErrEmptyCompletion, Message: "nil ChatResponse"}
	}
	if len(resp.Choices) == 0 {
		return ChatChoice{}, &Error{
			Code:     ErrEmptyCompletion,
			Message:  "empty choices in ChatResponse (model returned no choices)",
			Provider: resp.Provider,
		}
	}
	return resp.Choices[0], nil
}

// FirstContent returns the trimmed text of the first choice.
// Whitespace-only content is reported as ErrEmptyCompletion rather than "".
func FirstContent(resp *ChatResponse) (string, error) {
	choice, err := FirstChoice(resp)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", &Error{
			Code:     ErrEmptyCompletion,
			Message:  fmt.Sprintf("first choice has no content (finish_reason=%q)", choice.FinishReason),
			Provider: resp.Provider,
		}
	}
	return text, nil
}
