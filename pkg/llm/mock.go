package llm

import "context"

// MockChatClient is a configurable mock for testing chat functionality.
// Set the function fields to control behavior in tests.
type MockChatClient struct {
	// ChatFunc is called when Chat is invoked.
	// If nil, returns an empty result and nil error.
	ChatFunc func(ctx context.Context, systemPrompt, userMessage string, history []Turn) (*ChatResult, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Provider is returned by GetProvider. Defaults to "mock".
	Provider string

	// Call tracking for verification
	ChatCalls        int
	LastSystemPrompt string
	LastUserMessage  string
	LastHistory      []Turn
}

// NewMockChatClient creates a new mock with sensible defaults.
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{
		Model:    "mock-model",
		Provider: "mock",
	}
}

// Chat implements ChatClient.
func (m *MockChatClient) Chat(ctx context.Context, systemPrompt, userMessage string, history []Turn) (*ChatResult, error) {
	m.ChatCalls++
	m.LastSystemPrompt = systemPrompt
	m.LastUserMessage = userMessage
	m.LastHistory = history
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, systemPrompt, userMessage, history)
	}
	return &ChatResult{Model: m.GetModel()}, nil
}

// GetModel implements ChatClient.
func (m *MockChatClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetProvider implements ChatClient.
func (m *MockChatClient) GetProvider() string {
	if m.Provider == "" {
		return "mock"
	}
	return m.Provider
}

// Reset clears call tracking.
func (m *MockChatClient) Reset() {
	m.ChatCalls = 0
	m.LastSystemPrompt = ""
	m.LastUserMessage = ""
	m.LastHistory = nil
}

// Ensure MockChatClient implements ChatClient at compile time.
var _ ChatClient = (*MockChatClient)(nil)
