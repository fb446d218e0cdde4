package models

import "time"

// Subscription plan values.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// User is a platform account. Email and username are unique across users.
type User struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Username         string         `json:"username"`
	IsActive         bool           `json:"is_active"`
	SubscriptionPlan string         `json:"subscription_plan"`
	UsageStats       map[string]any `json:"usage_stats"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Email            string `json:"email"`
	Username         string `json:"username"`
	SubscriptionPlan string `json:"subscription_plan"`
}

// UserUpdate is a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Email            *string `json:"email"`
	Username         *string `json:"username"`
	SubscriptionPlan *string `json:"subscription_plan"`
	IsActive         *bool   `json:"is_active"`
}

// UserStats is the fresh-at-call-time aggregation of a user's footprint.
type UserStats struct {
	UserID           string `json:"user_id"`
	AgentCount       int    `json:"agent_count"`
	WorkflowCount    int    `json:"workflow_count"`
	TemplateCount    int    `json:"template_count"`
	SessionCount     int    `json:"session_count"`
	SubscriptionPlan string `json:"subscription_plan"`
}

// ValidPlans contains all valid subscription plan values.
var ValidPlans = []string{PlanFree, PlanPro, PlanEnterprise}

// IsValidPlan checks if the given subscription plan is valid.
func IsValidPlan(plan string) bool {
	for _, p := range ValidPlans {
		if p == plan {
			return true
		}
	}
	return false
}
