package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

// ChatRequest for POST /api/agents/{id}/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// AgentListResponse for GET /api/agents.
type AgentListResponse struct {
	Agents []*models.Agent `json:"agents"`
	Total  int             `json:"total"`
}

// SessionListResponse for GET /api/agents/{id}/sessions.
type SessionListResponse struct {
	Sessions []*models.ChatSession `json:"sessions"`
	Total    int                   `json:"total"`
}

// MessageListResponse for GET /api/agents/{id}/sessions/{sid}/messages.
type MessageListResponse struct {
	Messages []*models.ChatMessage `json:"messages"`
	Total    int                   `json:"total"`
}

// AgentHandler handles agent HTTP requests, including the chat surface.
type AgentHandler struct {
	agentService services.AgentService
	chatService  services.ChatService
	logger       *zap.Logger
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(
	agentService services.AgentService,
	chatService services.ChatService,
	logger *zap.Logger,
) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		chatService:  chatService,
		logger:       logger,
	}
}

// RegisterRoutes registers the agent handler's routes on the given mux.
func (h *AgentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/agents", h.List)
	mux.HandleFunc("POST /api/agents", h.Create)
	mux.HandleFunc("GET /api/agents/{id}", h.Get)
	mux.HandleFunc("PUT /api/agents/{id}", h.Update)
	mux.HandleFunc("DELETE /api/agents/{id}", h.Delete)
	mux.HandleFunc("POST /api/agents/{id}/chat", h.Chat)
	mux.HandleFunc("GET /api/agents/{id}/sessions", h.Sessions)
	mux.HandleFunc("GET /api/agents/{id}/sessions/{sid}/messages", h.SessionMessages)
}

// List handles GET /api/agents. An optional user_id query parameter filters
// by owner.
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.logger.Error("Failed to list agents", zap.Error(err))
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	response := AgentListResponse{Agents: agents, Total: len(agents)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/agents.
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AgentCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "agent name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	agent, err := h.agentService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create agent", zap.String("name", req.Name), zap.Error(err))
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, agent); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/agents/{id}.
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	agent, err := h.agentService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, agent); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/agents/{id}.
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.AgentUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	agent, err := h.agentService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to update agent", zap.String("agent_id", id), zap.Error(err))
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, agent); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/agents/{id}.
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.agentService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Chat handles POST /api/agents/{id}/chat.
func (h *AgentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ChatRequest
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

	response, err := h.chatService.ChatWithAgent(r.Context(), id, req.Message, req.SessionID)
	if err != nil {
		h.logger.Error("Chat with agent failed", zap.String("agent_id", id), zap.Error(err))
		writeServiceError(w, h.logger, err, "not_found", "Agent or session not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Sessions handles GET /api/agents/{id}/sessions.
func (h *AgentHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sessions, err := h.chatService.Sessions(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "agent_not_found", "Agent not found")
		return
	}

	response := SessionListResponse{Sessions: sessions, Total: len(sessions)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SessionMessages handles GET /api/agents/{id}/sessions/{sid}/messages.
func (h *AgentHandler) SessionMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sessionID := r.PathValue("sid")

	messages, err := h.chatService.SessionMessages(r.Context(), id, sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "session_not_found", "Session not found")
		return
	}

	response := MessageListResponse{Messages: messages, Total: len(messages)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
