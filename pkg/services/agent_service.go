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

// AgentService defines the interface for agent operations.
type AgentService interface {
	// List retrieves agents, filtered by owning user when userID is non-empty.
	List(ctx context.Context, userID string) ([]*models.Agent, error)
	Get(ctx context.Context, id string) (*models.Agent, error)
	Create(ctx context.Context, payload *models.AgentCreate) (*models.Agent, error)
	// Update applies only the fields present in the partial payload. Unknown
	// status values are rejected with apperrors.ErrInvalidStatus.
	Update(ctx context.Context, id string, payload *models.AgentUpdate) (*models.Agent, error)
	Delete(ctx context.Context, id string) error
}

// agentService implements AgentService.
type agentService struct {
	repo   repositories.AgentRepository
	logger *zap.Logger
}

// NewAgentService creates a new agent service.
func NewAgentService(repo repositories.AgentRepository, logger *zap.Logger) AgentService {
	return &agentService{repo: repo, logger: logger}
}

// List retrieves agents, optionally filtered by owning user.
func (s *agentService) List(ctx context.Context, userID string) ([]*models.Agent, error) {
	agents, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []*models.Agent{}
	}
	return agents, nil
}

// Get retrieves an agent by ID.
func (s *agentService) Get(ctx context.Context, id string) (*models.Agent, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns an ID and timestamps, persists, and returns the stored agent.
func (s *agentService) Create(ctx context.Context, payload *models.AgentCreate) (*models.Agent, error) {
	now := time.Now().UTC()

	memoryEnabled := true
	if payload.MemoryEnabled != nil {
		memoryEnabled = *payload.MemoryEnabled
	}
	tools := payload.Tools
	if tools == nil {
		tools = []string{}
	}

	agent := &models.Agent{
		ID:                 uuid.New().String(),
		Name:               payload.Name,
		Description:        payload.Description,
		Model:              models.DefaultChatModel,
		SystemPrompt:       payload.SystemPrompt,
		Tools:              tools,
		MemoryEnabled:      memoryEnabled,
		Status:             models.AgentStatusActive,
		UserID:             payload.UserID,
		PerformanceMetrics: map[string]any{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, agent); err != nil {
		return nil, err
	}

	s.logger.Info("Agent created",
		zap.String("agent_id", agent.ID),
		zap.String("user_id", agent.UserID))

	return agent, nil
}

// Update applies only the fields present in the partial payload and stamps
// updated_at.
func (s *agentService) Update(ctx context.Context, id string, payload *models.AgentUpdate) (*models.Agent, error) {
	var updates repositories.FieldUpdates
	if payload.Name != nil {
		updates.Set("name", *payload.Name)
	}
	if payload.Description != nil {
		updates.Set("description", *payload.Description)
	}
	if payload.SystemPrompt != nil {
		updates.Set("system_prompt", *payload.SystemPrompt)
	}
	if payload.Tools != nil {
		if err := updates.SetJSON("tools", *payload.Tools); err != nil {
			return nil, err
		}
	}
	if payload.MemoryEnabled != nil {
		updates.Set("memory_enabled", *payload.MemoryEnabled)
	}
	if payload.Status != nil {
		if !models.IsValidAgentStatus(*payload.Status) {
			return nil, apperrors.ErrInvalidStatus
		}
		updates.Set("status", *payload.Status)
	}
	updates.Set("updated_at", time.Now().UTC())

	return s.repo.Update(ctx, id, &updates)
}

// Delete removes an agent unconditionally. Sessions and messages that
// reference it are left orphaned.
func (s *agentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Agent deleted", zap.String("agent_id", id))
	return nil
}
