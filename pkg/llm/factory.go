package llm

import (
	"go.uber.org/zap"
)

// NewClient creates a chat client for the configured provider.
// Any provider name other than "anthropic" is treated as OpenAI-compatible,
// which covers OpenRouter, OpenAI and self-hosted endpoints.
func NewClient(cfg *Config, logger *zap.Logger) (ChatClient, error) {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicClient(cfg, logger)
	default:
		return newOpenAICompatClient(cfg, logger)
	}
}
