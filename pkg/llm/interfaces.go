// Package llm wraps external chat-completion providers behind a single
// gateway interface.
package llm

import "context"

// Conversation turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FallbackResponse is a generic reply callers may surface to end users when
// the provider call fails.
const FallbackResponse = "I apologize, but I encountered an error while processing your request."

// Turn is one prior conversation half, tagged with its role.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResult is a successful completion.
type ChatResult struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Usage    Usage  `json:"usage"`
}

// ChatClient is the gateway to an external chat-completion provider.
// The provider sees the system prompt first, prior turns in their given
// order, and the new user message last.
// Use this interface for dependency injection to enable mocking in tests.
type ChatClient interface {
	Chat(ctx context.Context, systemPrompt, userMessage string, history []Turn) (*ChatResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetProvider returns the configured provider name.
	GetProvider() string
}
