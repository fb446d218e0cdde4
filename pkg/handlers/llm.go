package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/llm"
)

// defaultDirectChatPrompt steers direct chats that carry no system prompt.
const defaultDirectChatPrompt = "You are a helpful assistant."

// DirectChatRequest for POST /api/llm/chat.
type DirectChatRequest struct {
	Message      string `json:"message"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// DirectChatResponse for POST /api/llm/chat.
type DirectChatResponse struct {
	Response   string `json:"response"`
	Model      string `json:"model"`
	Provider   string `json:"provider"`
	TokensUsed int    `json:"tokens_used"`
}

// ModelInfoResponse for GET /api/llm/models.
type ModelInfoResponse struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// LLMHandler exposes the model gateway directly, without agent context.
type LLMHandler struct {
	client llm.ChatClient
	logger *zap.Logger
}

// NewLLMHandler creates a new LLM handler.
func NewLLMHandler(client llm.ChatClient, logger *zap.Logger) *LLMHandler {
	return &LLMHandler{client: client, logger: logger}
}

// RegisterRoutes registers the LLM handler's routes on the given mux.
func (h *LLMHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/llm/test", h.Test)
	mux.HandleFunc("POST /api/llm/chat", h.Chat)
	mux.HandleFunc("GET /api/llm/models", h.Models)
}

// Test handles GET /api/llm/test. It sends a canned prompt through the
// gateway and reports reachability.
func (h *LLMHandler) Test(w http.ResponseWriter, r *http.Request) {
	result := llm.TestConnection(r.Context(), h.client)
	if !result.Success {
		h.logger.Warn("LLM connection test failed",
			zap.String("provider", result.Provider),
			zap.String("model", result.Model),
			zap.String("error", result.Error))
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Chat handles POST /api/llm/chat. On gateway failure the canned fallback
// response is returned instead of an error.
func (h *LLMHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req DirectChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Message == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "message is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultDirectChatPrompt
	}

	response := DirectChatResponse{
		Model:    h.client.GetModel(),
		Provider: h.client.GetProvider(),
	}

	result, err := h.client.Chat(r.Context(), systemPrompt, req.Message, nil)
	if err != nil {
		h.logger.Error("Direct chat failed", zap.Error(err))
		response.Response = llm.FallbackResponse
	} else {
		response.Response = result.Response
		response.TokensUsed = result.Usage.TotalTokens
		if result.Model != "" {
			response.Model = result.Model
		}
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Models handles GET /api/llm/models.
func (h *LLMHandler) Models(w http.ResponseWriter, r *http.Request) {
	response := ModelInfoResponse{
		Model:    h.client.GetModel(),
		Provider: h.client.GetProvider(),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
