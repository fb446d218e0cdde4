package handlers

import (
	"context"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

// mockAgentService is a func-field mock of services.AgentService.
type mockAgentService struct {
	ListFunc   func(ctx context.Context, userID string) ([]*models.Agent, error)
	GetFunc    func(ctx context.Context, id string) (*models.Agent, error)
	CreateFunc func(ctx context.Context, payload *models.AgentCreate) (*models.Agent, error)
	UpdateFunc func(ctx context.Context, id string, payload *models.AgentUpdate) (*models.Agent, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockAgentService) List(ctx context.Context, userID string) ([]*models.Agent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []*models.Agent{}, nil
}

func (m *mockAgentService) Get(ctx context.Context, id string) (*models.Agent, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAgentService) Create(ctx context.Context, payload *models.AgentCreate) (*models.Agent, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return &models.Agent{ID: "agent-1", Name: payload.Name}, nil
}

func (m *mockAgentService) Update(ctx context.Context, id string, payload *models.AgentUpdate) (*models.Agent, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAgentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockChatService is a func-field mock of services.ChatService.
type mockChatService struct {
	ChatWithAgentFunc   func(ctx context.Context, agentID, message, sessionID string) (*services.ChatResponse, error)
	SessionsFunc        func(ctx context.Context, agentID string) ([]*models.ChatSession, error)
	SessionMessagesFunc func(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error)
}

func (m *mockChatService) ChatWithAgent(ctx context.Context, agentID, message, sessionID string) (*services.ChatResponse, error) {
	if m.ChatWithAgentFunc != nil {
		return m.ChatWithAgentFunc(ctx, agentID, message, sessionID)
	}
	return &services.ChatResponse{AgentID: agentID, Message: message}, nil
}

func (m *mockChatService) Sessions(ctx context.Context, agentID string) ([]*models.ChatSession, error) {
	if m.SessionsFunc != nil {
		return m.SessionsFunc(ctx, agentID)
	}
	return []*models.ChatSession{}, nil
}

func (m *mockChatService) SessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error) {
	if m.SessionMessagesFunc != nil {
		return m.SessionMessagesFunc(ctx, agentID, sessionID)
	}
	return []*models.ChatMessage{}, nil
}

// mockWorkflowService is a func-field mock of services.WorkflowService.
type mockWorkflowService struct {
	ListFunc    func(ctx context.Context, userID string) ([]*models.Workflow, error)
	GetFunc     func(ctx context.Context, id string) (*models.Workflow, error)
	CreateFunc  func(ctx context.Context, payload *models.WorkflowCreate) (*models.Workflow, error)
	UpdateFunc  func(ctx context.Context, id string, payload *models.WorkflowUpdate) (*models.Workflow, error)
	DeleteFunc  func(ctx context.Context, id string) error
	ExecuteFunc func(ctx context.Context, id string) error
	StatusFunc  func(ctx context.Context, id string) (*models.WorkflowStatus, error)
}

func (m *mockWorkflowService) List(ctx context.Context, userID string) ([]*models.Workflow, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []*models.Workflow{}, nil
}

func (m *mockWorkflowService) Get(ctx context.Context, id string) (*models.Workflow, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockWorkflowService) Create(ctx context.Context, payload *models.WorkflowCreate) (*models.Workflow, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return &models.Workflow{ID: "wf-1", Name: payload.Name}, nil
}

func (m *mockWorkflowService) Update(ctx context.Context, id string, payload *models.WorkflowUpdate) (*models.Workflow, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockWorkflowService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockWorkflowService) Execute(ctx context.Context, id string) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, id)
	}
	return nil
}

func (m *mockWorkflowService) Status(ctx context.Context, id string) (*models.WorkflowStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

// mockTemplateService is a func-field mock of services.TemplateService.
type mockTemplateService struct {
	ListFunc       func(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error)
	GetFunc        func(ctx context.Context, id string) (*models.Template, error)
	CreateFunc     func(ctx context.Context, payload *models.TemplateCreate) (*models.Template, error)
	UpdateFunc     func(ctx context.Context, id string, payload *models.TemplateUpdate) (*models.Template, error)
	DeleteFunc     func(ctx context.Context, id string) error
	UseFunc        func(ctx context.Context, id string) error
	RateFunc       func(ctx context.Context, id string, rating float64) (float64, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockTemplateService) List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Template{}, nil
}

func (m *mockTemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTemplateService) Create(ctx context.Context, payload *models.TemplateCreate) (*models.Template, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return &models.Template{ID: "tpl-1", Name: payload.Name}, nil
}

func (m *mockTemplateService) Update(ctx context.Context, id string, payload *models.TemplateUpdate) (*models.Template, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTemplateService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTemplateService) Use(ctx context.Context, id string) error {
	if m.UseFunc != nil {
		return m.UseFunc(ctx, id)
	}
	return nil
}

func (m *mockTemplateService) Rate(ctx context.Context, id string, rating float64) (float64, error) {
	if m.RateFunc != nil {
		return m.RateFunc(ctx, id, rating)
	}
	return rating, nil
}

func (m *mockTemplateService) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []string{}, nil
}

// mockUserService is a func-field mock of services.UserService.
type mockUserService struct {
	ListFunc   func(ctx context.Context) ([]*models.User, error)
	GetFunc    func(ctx context.Context, id string) (*models.User, error)
	CreateFunc func(ctx context.Context, payload *models.UserCreate) (*models.User, error)
	UpdateFunc func(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error)
	DeleteFunc func(ctx context.Context, id string) error
	StatsFunc  func(ctx context.Context, id string) (*models.UserStats, error)
}

func (m *mockUserService) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *mockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserService) Create(ctx context.Context, payload *models.UserCreate) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return &models.User{ID: "user-1", Email: payload.Email, Username: payload.Username}, nil
}

func (m *mockUserService) Update(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

// Compile-time interface checks for the mocks.
var (
	_ services.AgentService    = (*mockAgentService)(nil)
	_ services.ChatService     = (*mockChatService)(nil)
	_ services.WorkflowService = (*mockWorkflowService)(nil)
	_ services.TemplateService = (*mockTemplateService)(nil)
	_ services.UserService     = (*mockUserService)(nil)
)
