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

// WorkflowService defines the interface for workflow operations.
type WorkflowService interface {
	// List retrieves workflows, filtered by owning user when userID is non-empty.
	List(ctx context.Context, userID string) ([]*models.Workflow, error)
	Get(ctx context.Context, id string) (*models.Workflow, error)
	Create(ctx context.Context, payload *models.WorkflowCreate) (*models.Workflow, error)
	// Update applies only the fields present in the partial payload. Unknown
	// status values are rejected with apperrors.ErrInvalidStatus.
	Update(ctx context.Context, id string, payload *models.WorkflowUpdate) (*models.Workflow, error)
	Delete(ctx context.Context, id string) error

	// Execute records one execution: execution_count is incremented and
	// last_execution set to now. The node graph is not interpreted.
	Execute(ctx context.Context, id string) error

	// Status returns the execution-state view of a workflow without side
	// effects.
	Status(ctx context.Context, id string) (*models.WorkflowStatus, error)
}

// workflowService implements WorkflowService.
type workflowService struct {
	repo   repositories.WorkflowRepository
	logger *zap.Logger
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(repo repositories.WorkflowRepository, logger *zap.Logger) WorkflowService {
	return &workflowService{repo: repo, logger: logger}
}

// List retrieves workflows, optionally filtered by owning user.
func (s *workflowService) List(ctx context.Context, userID string) ([]*models.Workflow, error) {
	workflows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workflows == nil {
		workflows = []*models.Workflow{}
	}
	return workflows, nil
}

// Get retrieves a workflow by ID.
func (s *workflowService) Get(ctx context.Context, id string) (*models.Workflow, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns an ID and timestamps, persists, and returns the stored
// workflow.
func (s *workflowService) Create(ctx context.Context, payload *models.WorkflowCreate) (*models.Workflow, error) {
	now := time.Now().UTC()

	nodes := payload.Nodes
	if nodes == nil {
		nodes = []map[string]any{}
	}
	connections := payload.Connections
	if connections == nil {
		connections = []map[string]string{}
	}
	triggers := payload.Triggers
	if triggers == nil {
		triggers = []map[string]any{}
	}

	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        payload.Name,
		Description: payload.Description,
		Nodes:       nodes,
		Connections: connections,
		Triggers:    triggers,
		Status:      models.WorkflowStatusDraft,
		UserID:      payload.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, workflow); err != nil {
		return nil, err
	}

	s.logger.Info("Workflow created",
		zap.String("workflow_id", workflow.ID),
		zap.String("user_id", workflow.UserID))

	return workflow, nil
}

// Update applies only the fields present in the partial payload and stamps
// updated_at.
func (s *workflowService) Update(ctx context.Context, id string, payload *models.WorkflowUpdate) (*models.Workflow, error) {
	var updates repositories.FieldUpdates
	if payload.Name != nil {
		updates.Set("name", *payload.Name)
	}
	if payload.Description != nil {
		updates.Set("description", *payload.Description)
	}
	if payload.Nodes != nil {
		if err := updates.SetJSON("nodes", *payload.Nodes); err != nil {
			return nil, err
		}
	}
	if payload.Connections != nil {
		if err := updates.SetJSON("connections", *payload.Connections); err != nil {
			return nil, err
		}
	}
	if payload.Triggers != nil {
		if err := updates.SetJSON("triggers", *payload.Triggers); err != nil {
			return nil, err
		}
	}
	if payload.Status != nil {
		if !models.IsValidWorkflowStatus(*payload.Status) {
			return nil, apperrors.ErrInvalidStatus
		}
		updates.Set("status", *payload.Status)
	}
	updates.Set("updated_at", time.Now().UTC())

	return s.repo.Update(ctx, id, &updates)
}

// Delete removes a workflow unconditionally.
func (s *workflowService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Execute records one execution.
func (s *workflowService) Execute(ctx context.Context, id string) error {
	if err := s.repo.RecordExecution(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.Info("Workflow executed", zap.String("workflow_id", id))
	return nil
}

// Status returns the execution-state view of a workflow.
func (s *workflowService) Status(ctx context.Context, id string) (*models.WorkflowStatus, error) {
	wf, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.WorkflowStatus{
		WorkflowID:     wf.ID,
		Status:         wf.Status,
		ExecutionCount: wf.ExecutionCount,
		LastExecution:  wf.LastExecution,
	}, nil
}
