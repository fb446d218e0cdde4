package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

// RateTemplateRequest for POST /api/templates/{id}/rate.
type RateTemplateRequest struct {
	Rating *float64 `json:"rating"`
}

// TemplateListResponse for GET /api/templates.
type TemplateListResponse struct {
	Templates []*models.Template `json:"templates"`
	Total     int                `json:"total"`
}

// CategoryListResponse for GET /api/templates/categories.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// TemplateHandler handles template HTTP requests.
type TemplateHandler struct {
	templateService services.TemplateService
	logger          *zap.Logger
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(templateService services.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, logger: logger}
}

// RegisterRoutes registers the template handler's routes on the given mux.
func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/templates", h.List)
	mux.HandleFunc("POST /api/templates", h.Create)
	mux.HandleFunc("GET /api/templates/categories", h.Categories)
	mux.HandleFunc("GET /api/templates/{id}", h.Get)
	mux.HandleFunc("PUT /api/templates/{id}", h.Update)
	mux.HandleFunc("DELETE /api/templates/{id}", h.Delete)
	mux.HandleFunc("POST /api/templates/{id}/use", h.Use)
	mux.HandleFunc("POST /api/templates/{id}/rate", h.Rate)
}

// List handles GET /api/templates. Optional category, is_public and
// created_by query parameters narrow the result.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.TemplateFilter{
		Category:  query.Get("category"),
		CreatedBy: query.Get("created_by"),
	}
	if raw := query.Get("is_public"); raw != "" {
		isPublic := raw == "true"
		filter.IsPublic = &isPublic
	}

	templates, err := h.templateService.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list templates", zap.Error(err))
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	response := TemplateListResponse{Templates: templates, Total: len(templates)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Name == "" || req.Category == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "template name and category are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	template, err := h.templateService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create template", zap.String("name", req.Name), zap.Error(err))
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, template); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Categories handles GET /api/templates/categories.
func (h *TemplateHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.templateService.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list template categories", zap.Error(err))
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, CategoryListResponse{Categories: categories}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	template, err := h.templateService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, template); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.TemplateUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	template, err := h.templateService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to update template", zap.String("template_id", id), zap.Error(err))
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, template); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.templateService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Use handles POST /api/templates/{id}/use.
func (h *TemplateHandler) Use(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.templateService.Use(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "used", "template_id": id}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Rate handles POST /api/templates/{id}/rate.
func (h *TemplateHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req RateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Rating == nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "rating is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	newRating, err := h.templateService.Rate(r.Context(), id, *req.Rating)
	if err != nil {
		writeServiceError(w, h.logger, err, "template_not_found", "Template not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"template_id": id, "rating": newRating}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
