package openai

import (
	"fmt"

	"github.com/sanjeed5/litellm-retry-wrapper/driver"
)

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func toDriverResponse(parsed *chatCompletionResponse) (*driver.Response, error) {
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("response contained no choices")
	}

	choice := parsed.Choices[0]

	resp := &driver.Response{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
		Model:        parsed.Model,
	}
	if parsed.Usage != nil {
		resp.Usage = &driver.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		}
	}

	return resp, nil
}
