// Package driver defines the provider-agnostic contract for LLM completion
// backends. The resilience layer in the root package depends only on the
// [Driver] interface, not on any specific transport or provider.
package driver

import "context"

// Driver is implemented by completion providers.
type Driver interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *Request) (*Response, error)
	// Name returns the driver identifier (e.g., "openai").
	Name() string
}

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the expected response format.
type ResponseFormat struct {
	Type string `json:"type"` // "text", "json_object"
}

// Usage contains token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is a provider-agnostic completion request. Optional fields are
// pointers so that drivers can distinguish "unset" from zero values and
// omit them on the wire.
type Request struct {
	Model          string
	Messages       []Message
	Temperature    *float64
	MaxTokens      *int
	ResponseFormat *ResponseFormat
	Metadata       map[string]string
}

// Response is a provider-agnostic completion response.
type Response struct {
	Content      string
	FinishReason string
	Model        string
	Usage        *Usage
}
