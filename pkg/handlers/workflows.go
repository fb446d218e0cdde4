package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

// WorkflowListResponse for GET /api/workflows.
type WorkflowListResponse struct {
	Workflows []*models.Workflow `json:"workflows"`
	Total     int                `json:"total"`
}

// WorkflowHandler handles workflow HTTP requests.
type WorkflowHandler struct {
	workflowService services.WorkflowService
	logger          *zap.Logger
}

// NewWorkflowHandler creates a new workflow handler.
func NewWorkflowHandler(workflowService services.WorkflowService, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService, logger: logger}
}

// RegisterRoutes registers the workflow handler's routes on the given mux.
func (h *WorkflowHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/workflows", h.List)
	mux.HandleFunc("POST /api/workflows", h.Create)
	mux.HandleFunc("GET /api/workflows/{id}", h.Get)
	mux.HandleFunc("PUT /api/workflows/{id}", h.Update)
	mux.HandleFunc("DELETE /api/workflows/{id}", h.Delete)
	mux.HandleFunc("POST /api/workflows/{id}/execute", h.Execute)
	mux.HandleFunc("GET /api/workflows/{id}/status", h.Status)
}

// List handles GET /api/workflows. An optional user_id query parameter
// filters by owner.
func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.workflowService.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.logger.Error("Failed to list workflows", zap.Error(err))
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	response := WorkflowListResponse{Workflows: workflows, Total: len(workflows)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/workflows.
func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.WorkflowCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "workflow name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	workflow, err := h.workflowService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create workflow", zap.String("name", req.Name), zap.Error(err))
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, workflow); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/workflows/{id}.
func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	workflow, err := h.workflowService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, workflow); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/workflows/{id}.
func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.WorkflowUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	workflow, err := h.workflowService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to update workflow", zap.String("workflow_id", id), zap.Error(err))
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, workflow); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/workflows/{id}.
func (h *WorkflowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.workflowService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Execute handles POST /api/workflows/{id}/execute.
func (h *WorkflowHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.workflowService.Execute(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "executed", "workflow_id": id}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Status handles GET /api/workflows/{id}/status.
func (h *WorkflowHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	status, err := h.workflowService.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "workflow_not_found", "Workflow not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, status); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
