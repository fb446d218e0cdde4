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

// UserService defines the interface for user operations.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	// Create persists a new user. Returns apperrors.ErrConflict when the email
	// or username is already taken, apperrors.ErrInvalidPlan for unknown
	// subscription plans.
	Create(ctx context.Context, payload *models.UserCreate) (*models.User, error)
	// Update applies only the fields present in the partial payload. Returns
	// apperrors.ErrConflict when a new email collides with another user,
	// apperrors.ErrInvalidPlan for unknown subscription plans.
	Update(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error

	// Stats aggregates per-resource counts for a user.
	Stats(ctx context.Context, id string) (*models.UserStats, error)
}

// userService implements UserService.
type userService struct {
	repo      repositories.UserRepository
	agents    repositories.AgentRepository
	workflows repositories.WorkflowRepository
	templates repositories.TemplateRepository
	chats     repositories.ChatRepository
	logger    *zap.Logger
}

// NewUserService creates a new user service. The resource repositories feed
// the Stats aggregation.
func NewUserService(
	repo repositories.UserRepository,
	agents repositories.AgentRepository,
	workflows repositories.WorkflowRepository,
	templates repositories.TemplateRepository,
	chats repositories.ChatRepository,
	logger *zap.Logger,
) UserService {
	return &userService{
		repo:      repo,
		agents:    agents,
		workflows: workflows,
		templates: templates,
		chats:     chats,
		logger:    logger,
	}
}

// List retrieves all users.
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Get retrieves a user by ID.
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create checks email and username uniqueness, then persists the user. The
// unique indexes on both columns close the race the pre-checks leave open.
func (s *userService) Create(ctx context.Context, payload *models.UserCreate) (*models.User, error) {
	plan := payload.SubscriptionPlan
	if plan == "" {
		plan = models.PlanFree
	} else if !models.IsValidPlan(plan) {
		return nil, apperrors.ErrInvalidPlan
	}

	emailTaken, err := s.repo.EmailExists(ctx, payload.Email, "")
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.ErrConflict
	}

	usernameTaken, err := s.repo.UsernameExists(ctx, payload.Username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, apperrors.ErrConflict
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:               uuid.New().String(),
		Email:            payload.Email,
		Username:         payload.Username,
		IsActive:         true,
		SubscriptionPlan: plan,
		UsageStats:       map[string]any{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username))

	return user, nil
}

// Update applies only the fields present in the partial payload. A new email
// is checked against every user except the one being updated.
func (s *userService) Update(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error) {
	var updates repositories.FieldUpdates
	if payload.Email != nil {
		taken, err := s.repo.EmailExists(ctx, *payload.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrConflict
		}
		updates.Set("email", *payload.Email)
	}
	if payload.Username != nil {
		updates.Set("username", *payload.Username)
	}
	if payload.IsActive != nil {
		updates.Set("is_active", *payload.IsActive)
	}
	if payload.SubscriptionPlan != nil {
		if !models.IsValidPlan(*payload.SubscriptionPlan) {
			return nil, apperrors.ErrInvalidPlan
		}
		updates.Set("subscription_plan", *payload.SubscriptionPlan)
	}
	updates.Set("updated_at", time.Now().UTC())

	return s.repo.Update(ctx, id, &updates)
}

// Delete removes a user. Owned resources are left in place.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id))
	return nil
}

// Stats aggregates per-resource counts for a user. The user must exist.
func (s *userService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agentCount, err := s.agents.CountByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	workflowCount, err := s.workflows.CountByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	templateCount, err := s.templates.CountByCreator(ctx, id)
	if err != nil {
		return nil, err
	}
	sessionCount, err := s.chats.CountSessionsByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		UserID:           user.ID,
		AgentCount:       agentCount,
		WorkflowCount:    workflowCount,
		TemplateCount:    templateCount,
		SessionCount:     sessionCount,
		SubscriptionPlan: user.SubscriptionPlan,
	}, nil
}
