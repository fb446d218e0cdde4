package llm

import (
	"context"
	"time"
)

// Canned connectivity-test prompt.
const (
	testSystemPrompt = "You are a helpful assistant."
	testUserMessage  = "Hello! Please respond with 'Connection successful!' to confirm the integration is working."
)

// TestResult contains connection test results.
type TestResult struct {
	Success        bool   `json:"success"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	Response       string `json:"response,omitempty"`
	Error          string `json:"error,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

// TestConnection sends a canned prompt through the client and reports the
// provider's reachability alongside the raw response.
func TestConnection(ctx context.Context, client ChatClient) *TestResult {
	result := &TestResult{
		Provider: client.GetProvider(),
		Model:    client.GetModel(),
	}

	start := time.Now()
	resp, err := client.Chat(ctx, testSystemPrompt, testUserMessage, nil)
	result.ResponseTimeMs = time.Since(start).Milliseconds()

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Response = resp.Response
	return result
}
