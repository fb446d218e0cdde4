package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client provides access to OpenAI-compatible chat-completion endpoints
// (OpenRouter, OpenAI, vLLM and friends).
type Client struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds configuration for creating a chat client.
type Config struct {
	Provider string // "openrouter" (or any OpenAI-compatible name), "anthropic"
	BaseURL  string // e.g. "https://openrouter.ai/api/v1"
	Model    string
	APIKey   string
}

func newOpenAICompatClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   logger.Named("llm"),
	}, nil
}

// buildMessages assembles the wire-order message list: system prompt first,
// prior turns in their given order, the new user message last.
func buildMessages(systemPrompt, userMessage string, history []Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})
}

// Chat sends one completion request and returns the generated text with
// token usage.
func (c *Client) Chat(ctx context.Context, systemPrompt, userMessage string, history []Turn) (*ChatResult, error) {
	messages := buildMessages(systemPrompt, userMessage, history)

	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("history_turns", len(history)),
		zap.Int("message_len", len(userMessage)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &ChatResult{
		Response: resp.Choices[0].Message.Content,
		Model:    c.model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.model
}

// GetProvider returns the configured provider name.
func (c *Client) GetProvider() string {
	return c.provider
}

// Ensure Client implements ChatClient at compile time.
var _ ChatClient = (*Client)(nil)
