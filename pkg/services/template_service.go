package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/repositories"
)

// TemplateService defines the interface for template operations.
type TemplateService interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, payload *models.TemplateCreate) (*models.Template, error)
	// Update applies only the fields present in the partial payload.
	Update(ctx context.Context, id string, payload *models.TemplateUpdate) (*models.Template, error)
	Delete(ctx context.Context, id string) error

	// Use records one usage: usage_count is incremented, nothing else changes.
	Use(ctx context.Context, id string) error

	// Rate folds one rating in [1, 5] into the running average, weighted by
	// usage_count as read at the start of the call, and returns the new
	// rating. Rate does not increment usage_count; only Use does.
	Rate(ctx context.Context, id string, rating float64) (float64, error)

	// Categories returns the distinct category values in use.
	Categories(ctx context.Context) ([]string, error)
}

// templateService implements TemplateService.
type templateService struct {
	repo   repositories.TemplateRepository
	logger *zap.Logger
}

// NewTemplateService creates a new template service.
func NewTemplateService(repo repositories.TemplateRepository, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, logger: logger}
}

// List retrieves templates matching the filter.
func (s *templateService) List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error) {
	templates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []*models.Template{}
	}
	return templates, nil
}

// Get retrieves a template by ID.
func (s *templateService) Get(ctx context.Context, id string) (*models.Template, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns an ID and timestamps, persists, and returns the stored
// template.
func (s *templateService) Create(ctx context.Context, payload *models.TemplateCreate) (*models.Template, error) {
	now := time.Now().UTC()

	isPublic := true
	if payload.IsPublic != nil {
		isPublic = *payload.IsPublic
	}
	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	data := payload.TemplateData
	if data == nil {
		data = map[string]any{}
	}

	template := &models.Template{
		ID:           uuid.New().String(),
		Name:         payload.Name,
		Description:  payload.Description,
		Category:     payload.Category,
		Tags:         tags,
		TemplateData: data,
		IsPublic:     isPublic,
		CreatedBy:    payload.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, template); err != nil {
		return nil, err
	}

	s.logger.Info("Template created",
		zap.String("template_id", template.ID),
		zap.String("category", template.Category))

	return template, nil
}

// Update applies only the fields present in the partial payload and stamps
// updated_at.
func (s *templateService) Update(ctx context.Context, id string, payload *models.TemplateUpdate) (*models.Template, error) {
	var updates repositories.FieldUpdates
	if payload.Name != nil {
		updates.Set("name", *payload.Name)
	}
	if payload.Description != nil {
		updates.Set("description", *payload.Description)
	}
	if payload.Category != nil {
		updates.Set("category", *payload.Category)
	}
	if payload.Tags != nil {
		if err := updates.SetJSON("tags", *payload.Tags); err != nil {
			return nil, err
		}
	}
	if payload.TemplateData != nil {
		if err := updates.SetJSON("template_data", *payload.TemplateData); err != nil {
			return nil, err
		}
	}
	if payload.IsPublic != nil {
		updates.Set("is_public", *payload.IsPublic)
	}
	updates.Set("updated_at", time.Now().UTC())

	return s.repo.Update(ctx, id, &updates)
}

// Delete removes a template unconditionally.
func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Use records one usage.
func (s *templateService) Use(ctx context.Context, id string) error {
	return s.repo.IncrementUsage(ctx, id)
}

// Rate folds one rating into the running average and returns the new value.
func (s *templateService) Rate(ctx context.Context, id string, rating float64) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, apperrors.ErrInvalidRating
	}

	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	newRating := (template.Rating*float64(template.UsageCount) + rating) / float64(template.UsageCount+1)

	if err := s.repo.UpdateRating(ctx, id, newRating); err != nil {
		return 0, err
	}

	s.logger.Info("Template rated",
		zap.String("template_id", id),
		zap.Float64("rating", rating),
		zap.Float64("new_rating", newRating))

	return newRating, nil
}

// Categories returns the distinct category values in use.
func (s *templateService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
