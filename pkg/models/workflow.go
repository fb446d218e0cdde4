package models

import "time"

// Workflow status values.
const (
	WorkflowStatusDraft    = "draft"
	WorkflowStatusActive   = "active"
	WorkflowStatusInactive = "inactive"
)

// Workflow is a user-authored automation definition. Nodes, connections and
// triggers are opaque payloads - the engine stores them but never interprets
// them.
type Workflow struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Nodes          []map[string]any    `json:"nodes"`
	Connections    []map[string]string `json:"connections"`
	Triggers       []map[string]any    `json:"triggers"`
	Status         string              `json:"status"`
	UserID         string              `json:"user_id"`
	ExecutionCount int                 `json:"execution_count"`
	LastExecution  *time.Time          `json:"last_execution"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// WorkflowCreate is the payload for creating a workflow.
type WorkflowCreate struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Nodes       []map[string]any    `json:"nodes"`
	Connections []map[string]string `json:"connections"`
	Triggers    []map[string]any    `json:"triggers"`
	UserID      string              `json:"user_id"`
}

// WorkflowUpdate is a partial update. Nil fields are left untouched.
type WorkflowUpdate struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Nodes       *[]map[string]any    `json:"nodes"`
	Connections *[]map[string]string `json:"connections"`
	Triggers    *[]map[string]any    `json:"triggers"`
	Status      *string              `json:"status"`
}

// WorkflowStatus is the execution-state view of a workflow.
type WorkflowStatus struct {
	WorkflowID     string     `json:"workflow_id"`
	Status         string     `json:"status"`
	ExecutionCount int        `json:"execution_count"`
	LastExecution  *time.Time `json:"last_execution"`
}

// ValidWorkflowStatuses contains all valid workflow status values.
var ValidWorkflowStatuses = []string{WorkflowStatusDraft, WorkflowStatusActive, WorkflowStatusInactive}

// IsValidWorkflowStatus checks if the given status is valid.
func IsValidWorkflowStatus(status string) bool {
	for _, s := range ValidWorkflowStatuses {
		if s == status {
			return true
		}
	}
	return false
}
