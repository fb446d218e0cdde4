package models

import "time"

// DefaultSessionUser owns sessions created for agents that have no owner.
const DefaultSessionUser = "default"

// ChatSession binds one agent and one user to a running conversation.
type ChatSession struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agent_id"`
	UserID       string    `json:"user_id"`
	IsActive     bool      `json:"is_active"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatMessage is one user/agent exchange within a session. Messages are
// append-only; no operation updates or deletes them.
type ChatMessage struct {
	ID            string    `json:"id"`
	AgentID       string    `json:"agent_id"`
	SessionID     string    `json:"session_id"`
	UserMessage   string    `json:"user_message"`
	AgentResponse string    `json:"agent_response"`
	Timestamp     time.Time `json:"timestamp"`
	ResponseTime  float64   `json:"response_time"`
	TokensUsed    int       `json:"tokens_used"`
}
