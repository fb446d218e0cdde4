package models

import "time"

// DefaultChatModel is assigned to agents that do not specify a model.
const DefaultChatModel = "deepseek/deepseek-r1-0528-qwen3-8b:free"

// Agent status values.
const (
	AgentStatusActive   = "active"
	AgentStatusInactive = "inactive"
	AgentStatusTraining = "training"
)

// Agent is a configured AI agent owned by a user.
// PerformanceMetrics is an open payload stored and returned unmodified.
type Agent struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Model              string         `json:"model"`
	SystemPrompt       string         `json:"system_prompt"`
	Tools              []string       `json:"tools"`
	MemoryEnabled      bool           `json:"memory_enabled"`
	Status             string         `json:"status"`
	UserID             string         `json:"user_id"`
	PerformanceMetrics map[string]any `json:"performance_metrics"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// AgentCreate is the payload for creating an agent.
type AgentCreate struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SystemPrompt  string   `json:"system_prompt"`
	Tools         []string `json:"tools"`
	MemoryEnabled *bool    `json:"memory_enabled"`
	UserID        string   `json:"user_id"`
}

// AgentUpdate is a partial update. Nil fields are left untouched.
type AgentUpdate struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	SystemPrompt  *string   `json:"system_prompt"`
	Tools         *[]string `json:"tools"`
	MemoryEnabled *bool     `json:"memory_enabled"`
	Status        *string   `json:"status"`
}

// ValidAgentStatuses contains all valid agent status values.
var ValidAgentStatuses = []string{AgentStatusActive, AgentStatusInactive, AgentStatusTraining}

// IsValidAgentStatus checks if the given status is valid.
func IsValidAgentStatus(status string) bool {
	for _, s := range ValidAgentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
