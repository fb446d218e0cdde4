package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/services"
)

func newUserMux(svc services.UserService) *http.ServeMux {
	mux := http.NewServeMux()
	NewUserHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestUserHandler_Create(t *testing.T) {
	mux := newUserMux(&mockUserService{})

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "username": "ada"})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "ada", user.Username)
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	mux := newUserMux(&mockUserService{})

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	svc := &mockUserService{
		CreateFunc: func(ctx context.Context, payload *models.UserCreate) (*models.User, error) {
			return nil, apperrors.ErrConflict
		},
	}
	mux := newUserMux(svc)

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "username": "ada"})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mux := newUserMux(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_Update_Conflict(t *testing.T) {
	svc := &mockUserService{
		UpdateFunc: func(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error) {
			return nil, apperrors.ErrConflict
		},
	}
	mux := newUserMux(svc)

	body, _ := json.Marshal(map[string]string{"email": "taken@example.com"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/user-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Update_InvalidPlan(t *testing.T) {
	svc := &mockUserService{
		UpdateFunc: func(ctx context.Context, id string, payload *models.UserUpdate) (*models.User, error) {
			return nil, apperrors.ErrInvalidPlan
		},
	}
	mux := newUserMux(svc)

	body, _ := json.Marshal(map[string]string{"subscription_plan": "premium"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/user-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_plan", resp["error"])
}

func TestUserHandler_Stats(t *testing.T) {
	svc := &mockUserService{
		StatsFunc: func(ctx context.Context, id string) (*models.UserStats, error) {
			return &models.UserStats{
				UserID:           id,
				AgentCount:       2,
				WorkflowCount:    1,
				TemplateCount:    4,
				SessionCount:     7,
				SubscriptionPlan: models.PlanFree,
			}, nil
		},
	}
	mux := newUserMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats models.UserStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, "user-1", stats.UserID)
	assert.Equal(t, 2, stats.AgentCount)
	assert.Equal(t, 7, stats.SessionCount)
}

func TestUserHandler_Stats_NotFound(t *testing.T) {
	mux := newUserMux(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/missing/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
