package services

import (
	"context"
	"time"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/repositories"
)

// mockAgentRepository is a func-field mock of repositories.AgentRepository.
type mockAgentRepository struct {
	ListFunc        func(ctx context.Context, userID string) ([]*models.Agent, error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.Agent, error)
	InsertFunc      func(ctx context.Context, agent *models.Agent) error
	UpdateFunc      func(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Agent, error)
	DeleteFunc      func(ctx context.Context, id string) error
	CountByUserFunc func(ctx context.Context, userID string) (int, error)
}

func (m *mockAgentRepository) List(ctx context.Context, userID string) ([]*models.Agent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockAgentRepository) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAgentRepository) Insert(ctx context.Context, agent *models.Agent) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, agent)
	}
	return nil
}

func (m *mockAgentRepository) Update(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Agent, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAgentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAgentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

// mockWorkflowRepository is a func-field mock of repositories.WorkflowRepository.
type mockWorkflowRepository struct {
	ListFunc            func(ctx context.Context, userID string) ([]*models.Workflow, error)
	GetByIDFunc         func(ctx context.Context, id string) (*models.Workflow, error)
	InsertFunc          func(ctx context.Context, workflow *models.Workflow) error
	UpdateFunc          func(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Workflow, error)
	DeleteFunc          func(ctx context.Context, id string) error
	RecordExecutionFunc func(ctx context.Context, id string, at time.Time) error
	CountByUserFunc     func(ctx context.Context, userID string) (int, error)
}

func (m *mockWorkflowRepository) List(ctx context.Context, userID string) ([]*models.Workflow, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockWorkflowRepository) Insert(ctx context.Context, workflow *models.Workflow) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, workflow)
	}
	return nil
}

func (m *mockWorkflowRepository) Update(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Workflow, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockWorkflowRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockWorkflowRepository) RecordExecution(ctx context.Context, id string, at time.Time) error {
	if m.RecordExecutionFunc != nil {
		return m.RecordExecutionFunc(ctx, id, at)
	}
	return nil
}

func (m *mockWorkflowRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

// mockTemplateRepository is a func-field mock of repositories.TemplateRepository.
type mockTemplateRepository struct {
	ListFunc           func(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.Template, error)
	InsertFunc         func(ctx context.Context, template *models.Template) error
	UpdateFunc         func(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Template, error)
	DeleteFunc         func(ctx context.Context, id string) error
	IncrementUsageFunc func(ctx context.Context, id string) error
	UpdateRatingFunc   func(ctx context.Context, id string, rating float64) error
	CategoriesFunc     func(ctx context.Context) ([]string, error)
	CountByCreatorFunc func(ctx context.Context, userID string) (int, error)
}

func (m *mockTemplateRepository) List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTemplateRepository) Insert(ctx context.Context, template *models.Template) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepository) Update(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.Template, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTemplateRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTemplateRepository) IncrementUsage(ctx context.Context, id string) error {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, id)
	}
	return nil
}

func (m *mockTemplateRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	if m.UpdateRatingFunc != nil {
		return m.UpdateRatingFunc(ctx, id, rating)
	}
	return nil
}

func (m *mockTemplateRepository) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockTemplateRepository) CountByCreator(ctx context.Context, userID string) (int, error) {
	if m.CountByCreatorFunc != nil {
		return m.CountByCreatorFunc(ctx, userID)
	}
	return 0, nil
}

// mockUserRepository is a func-field mock of repositories.UserRepository.
type mockUserRepository struct {
	ListFunc           func(ctx context.Context) ([]*models.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	InsertFunc         func(ctx context.Context, user *models.User) error
	UpdateFunc         func(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.User, error)
	DeleteFunc         func(ctx context.Context, id string) error
	EmailExistsFunc    func(ctx context.Context, email, excludeID string) (bool, error)
	UsernameExistsFunc func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) Insert(ctx context.Context, user *models.User) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, updates *repositories.FieldUpdates) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	if m.EmailExistsFunc != nil {
		return m.EmailExistsFunc(ctx, email, excludeID)
	}
	return false, nil
}

func (m *mockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFunc != nil {
		return m.UsernameExistsFunc(ctx, username)
	}
	return false, nil
}

// mockChatRepository is a func-field mock of repositories.ChatRepository.
type mockChatRepository struct {
	InsertSessionFunc       func(ctx context.Context, session *models.ChatSession) error
	GetSessionFunc          func(ctx context.Context, id string) (*models.ChatSession, error)
	ListSessionsByAgentFunc func(ctx context.Context, agentID string) ([]*models.ChatSession, error)
	BumpSessionFunc         func(ctx context.Context, id string, at time.Time) error
	CountSessionsFunc       func(ctx context.Context, userID string) (int, error)
	InsertMessageFunc       func(ctx context.Context, message *models.ChatMessage) error
	ListRecentFunc          func(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error)
	ListSessionMsgsFunc     func(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error)
}

func (m *mockChatRepository) InsertSession(ctx context.Context, session *models.ChatSession) error {
	if m.InsertSessionFunc != nil {
		return m.InsertSessionFunc(ctx, session)
	}
	return nil
}

func (m *mockChatRepository) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockChatRepository) ListSessionsByAgent(ctx context.Context, agentID string) ([]*models.ChatSession, error) {
	if m.ListSessionsByAgentFunc != nil {
		return m.ListSessionsByAgentFunc(ctx, agentID)
	}
	return nil, nil
}

func (m *mockChatRepository) BumpSession(ctx context.Context, id string, at time.Time) error {
	if m.BumpSessionFunc != nil {
		return m.BumpSessionFunc(ctx, id, at)
	}
	return nil
}

func (m *mockChatRepository) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	if m.CountSessionsFunc != nil {
		return m.CountSessionsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockChatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	if m.InsertMessageFunc != nil {
		return m.InsertMessageFunc(ctx, message)
	}
	return nil
}

func (m *mockChatRepository) ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, sessionID, limit)
	}
	return nil, nil
}

func (m *mockChatRepository) ListSessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error) {
	if m.ListSessionMsgsFunc != nil {
		return m.ListSessionMsgsFunc(ctx, agentID, sessionID)
	}
	return nil, nil
}

// Compile-time interface checks for the mocks.
var (
	_ repositories.AgentRepository    = (*mockAgentRepository)(nil)
	_ repositories.WorkflowRepository = (*mockWorkflowRepository)(nil)
	_ repositories.TemplateRepository = (*mockTemplateRepository)(nil)
	_ repositories.UserRepository     = (*mockUserRepository)(nil)
	_ repositories.ChatRepository     = (*mockChatRepository)(nil)
)
