package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/llm"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
	"github.com/agentforge-ai/agentforge-engine/pkg/repositories"
)

// historyLimit caps how many prior messages are replayed to the model.
const historyLimit = 50

// ChatResponse is the result of one orchestrated agent chat turn.
type ChatResponse struct {
	AgentID    string    `json:"agent_id"`
	SessionID  string    `json:"session_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	TokensUsed int       `json:"tokens_used"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatService orchestrates conversations between users and agents.
type ChatService interface {
	// ChatWithAgent runs one chat turn against an agent. A non-empty sessionID
	// continues that session and fails with apperrors.ErrNotFound when it
	// names no session; otherwise a new session is created. The exchange is
	// persisted only after the model call succeeds.
	ChatWithAgent(ctx context.Context, agentID, message, sessionID string) (*ChatResponse, error)

	// Sessions lists the chat sessions bound to an agent.
	Sessions(ctx context.Context, agentID string) ([]*models.ChatSession, error)

	// SessionMessages returns the full transcript of an agent's session,
	// oldest first.
	SessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error)
}

// chatService implements ChatService.
type chatService struct {
	agents repositories.AgentRepository
	chats  repositories.ChatRepository
	client llm.ChatClient
	logger *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	agents repositories.AgentRepository,
	chats repositories.ChatRepository,
	client llm.ChatClient,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		agents: agents,
		chats:  chats,
		client: client,
		logger: logger,
	}
}

// ChatWithAgent runs one chat turn against an agent.
func (s *chatService) ChatWithAgent(ctx context.Context, agentID, message, sessionID string) (*ChatResponse, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	session, err := s.resolveSession(ctx, agent, sessionID)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	systemPrompt := buildAgentSystemPrompt(agent)

	start := time.Now()
	result, err := s.client.Chat(ctx, systemPrompt, message, history)
	if err != nil {
		s.logger.Error("Model call failed",
			zap.String("agent_id", agent.ID),
			zap.String("session_id", session.ID),
			zap.Error(err))
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	elapsed := time.Since(start).Seconds()

	now := time.Now().UTC()
	msg := &models.ChatMessage{
		ID:            uuid.New().String(),
		AgentID:       agent.ID,
		SessionID:     session.ID,
		UserMessage:   message,
		AgentResponse: result.Response,
		Timestamp:     now,
		ResponseTime:  elapsed,
		TokensUsed:    result.Usage.TotalTokens,
	}
	if err := s.chats.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.chats.BumpSession(ctx, session.ID, now); err != nil {
		return nil, err
	}

	s.logger.Info("Chat turn completed",
		zap.String("agent_id", agent.ID),
		zap.String("session_id", session.ID),
		zap.Int("tokens_used", msg.TokensUsed),
		zap.Float64("response_time", elapsed))

	return &ChatResponse{
		AgentID:    agent.ID,
		SessionID:  session.ID,
		Message:    message,
		Response:   result.Response,
		TokensUsed: msg.TokensUsed,
		Timestamp:  now,
	}, nil
}

// resolveSession loads the session named by sessionID, or creates a new one
// when no id was supplied. A supplied id that names no session is the
// caller's error and is not upgraded to a new session. Sessions for unowned
// agents fall to the sentinel user.
func (s *chatService) resolveSession(ctx context.Context, agent *models.Agent, sessionID string) (*models.ChatSession, error) {
	if sessionID != "" {
		return s.chats.GetSession(ctx, sessionID)
	}

	userID := agent.UserID
	if userID == "" {
		userID = models.DefaultSessionUser
	}

	now := time.Now().UTC()
	session := &models.ChatSession{
		ID:        uuid.New().String(),
		AgentID:   agent.ID,
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.chats.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Chat session created",
		zap.String("session_id", session.ID),
		zap.String("agent_id", agent.ID))

	return session, nil
}

// loadHistory returns up to historyLimit prior messages as model turns,
// oldest first.
func (s *chatService) loadHistory(ctx context.Context, sessionID string) ([]llm.Turn, error) {
	recent, err := s.chats.ListRecentMessages(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, err
	}

	// Rows come back newest first; the model wants them oldest first.
	turns := make([]llm.Turn, 0, len(recent)*2)
	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		turns = append(turns, llm.Turn{Role: llm.RoleUser, Content: msg.UserMessage})
		turns = append(turns, llm.Turn{Role: llm.RoleAssistant, Content: msg.AgentResponse})
	}
	return turns, nil
}

// buildAgentSystemPrompt extends the agent's stored prompt with its
// configuration so the model answers in character.
func buildAgentSystemPrompt(agent *models.Agent) string {
	var b strings.Builder
	b.WriteString(agent.SystemPrompt)
	b.WriteString("\n\nYou are an AI agent with the following configuration:\n")
	fmt.Fprintf(&b, "- Name: %s\n", agent.Name)
	fmt.Fprintf(&b, "- Description: %s\n", agent.Description)
	fmt.Fprintf(&b, "- Available Tools: %s\n", strings.Join(agent.Tools, ", "))
	fmt.Fprintf(&b, "- Memory Enabled: %t\n", agent.MemoryEnabled)
	b.WriteString("\nPlease respond in a way that's consistent with your role and capabilities.")
	return b.String()
}

// Sessions lists the chat sessions bound to an agent. The agent must exist.
func (s *chatService) Sessions(ctx context.Context, agentID string) ([]*models.ChatSession, error) {
	if _, err := s.agents.GetByID(ctx, agentID); err != nil {
		return nil, err
	}
	sessions, err := s.chats.ListSessionsByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*models.ChatSession{}
	}
	return sessions, nil
}

// SessionMessages returns the full transcript of an agent's session.
func (s *chatService) SessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error) {
	if _, err := s.agents.GetByID(ctx, agentID); err != nil {
		return nil, err
	}
	if _, err := s.chats.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.chats.ListSessionMessages(ctx, agentID, sessionID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return messages, nil
}
