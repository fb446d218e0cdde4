//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/repositories"
	"github.com/agentforge-ai/agentforge-engine/pkg/testhelpers"
)

func newAgent(userID string) *models.Agent {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Agent{
		ID:                 uuid.New().String(),
		Name:               "Helper",
		Description:        "Answers questions",
		Model:              models.DefaultChatModel,
		SystemPrompt:       "You help.",
		Tools:              []string{"search"},
		MemoryEnabled:      true,
		Status:             models.AgentStatusActive,
		UserID:             userID,
		PerformanceMetrics: map[string]any{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestAgentRepository_RoundTrip(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewAgentRepository(db.DB)
	ctx := context.Background()

	agent := newAgent("user-roundtrip")
	require.NoError(t, repo.Insert(ctx, agent))

	got, err := repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.Name, got.Name)
	assert.Equal(t, agent.Tools, got.Tools)
	assert.Equal(t, agent.Status, got.Status)

	listed, err := repo.List(ctx, "user-roundtrip")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, agent.ID, listed[0].ID)

	require.NoError(t, repo.Delete(ctx, agent.ID))
	_, err = repo.GetByID(ctx, agent.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAgentRepository_Update_ExcludeUnset(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewAgentRepository(db.DB)
	ctx := context.Background()

	agent := newAgent("user-update")
	require.NoError(t, repo.Insert(ctx, agent))
	t.Cleanup(func() { _ = repo.Delete(ctx, agent.ID) })

	var updates repositories.FieldUpdates
	updates.Set("name", "Renamed")
	updates.Set("updated_at", time.Now().UTC())

	got, err := repo.Update(ctx, agent.ID, &updates)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	// Untouched fields keep their values.
	assert.Equal(t, agent.SystemPrompt, got.SystemPrompt)
	assert.Equal(t, agent.Tools, got.Tools)
	assert.True(t, got.MemoryEnabled)
}

func TestWorkflowRepository_RecordExecution(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewWorkflowRepository(db.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	wf := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Nightly sync",
		Nodes:       []map[string]any{},
		Connections: []map[string]string{},
		Triggers:    []map[string]any{},
		Status:      models.WorkflowStatusDraft,
		UserID:      "user-exec",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.Insert(ctx, wf))
	t.Cleanup(func() { _ = repo.Delete(ctx, wf.ID) })

	runAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.RecordExecution(ctx, wf.ID, runAt))
	require.NoError(t, repo.RecordExecution(ctx, wf.ID, runAt))

	got, err := repo.GetByID(ctx, wf.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ExecutionCount)
	require.NotNil(t, got.LastExecution)

	assert.ErrorIs(t, repo.RecordExecution(ctx, "missing", runAt), apperrors.ErrNotFound)
}

func TestTemplateRepository_UsageAndRating(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewTemplateRepository(db.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tpl := &models.Template{
		ID:           uuid.New().String(),
		Name:         "Support Bot",
		Category:     "support",
		Tags:         []string{"bots"},
		TemplateData: map[string]any{"kind": "chat"},
		IsPublic:     true,
		CreatedBy:    "user-tpl",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Insert(ctx, tpl))
	t.Cleanup(func() { _ = repo.Delete(ctx, tpl.ID) })

	require.NoError(t, repo.IncrementUsage(ctx, tpl.ID))
	require.NoError(t, repo.UpdateRating(ctx, tpl.ID, 4.5))

	got, err := repo.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
	assert.InDelta(t, 4.5, got.Rating, 1e-9)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "support")
}

func TestUserRepository_UniqueViolations(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewUserRepository(db.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &models.User{
		ID:               uuid.New().String(),
		Email:            "unique@example.com",
		Username:         "unique",
		IsActive:         true,
		SubscriptionPlan: models.PlanFree,
		UsageStats:       map[string]any{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, repo.Insert(ctx, user))
	t.Cleanup(func() { _ = repo.Delete(ctx, user.ID) })

	dup := *user
	dup.ID = uuid.New().String()
	dup.Username = "unique2"
	assert.ErrorIs(t, repo.Insert(ctx, &dup), apperrors.ErrConflict)

	taken, err := repo.EmailExists(ctx, "unique@example.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	// The owning user is excluded from the check.
	taken, err = repo.EmailExists(ctx, "unique@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestChatRepository_MessagesAndSessions(t *testing.T) {
	db := testhelpers.GetEngineDB(t)
	repo := repositories.NewChatRepository(db.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := &models.ChatSession{
		ID:        uuid.New().String(),
		AgentID:   "agent-chat",
		UserID:    "user-chat",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.InsertSession(ctx, session))

	for i := 0; i < 3; i++ {
		msg := &models.ChatMessage{
			ID:            uuid.New().String(),
			AgentID:       session.AgentID,
			SessionID:     session.ID,
			UserMessage:   "question",
			AgentResponse: "answer",
			Timestamp:     now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.InsertMessage(ctx, msg))
		require.NoError(t, repo.BumpSession(ctx, session.ID, msg.Timestamp))
	}

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MessageCount)

	recent, err := repo.ListRecentMessages(ctx, session.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first.
	assert.True(t, recent[0].Timestamp.After(recent[1].Timestamp))

	transcript, err := repo.ListSessionMessages(ctx, session.AgentID, session.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	// Oldest first.
	assert.True(t, transcript[0].Timestamp.Before(transcript[2].Timestamp))
}
