package models

import "time"

// Template is a reusable, shareable building block. TemplateData is an open
// payload stored and returned unmodified.
type Template struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Tags         []string       `json:"tags"`
	TemplateData map[string]any `json:"template_data"`
	IsPublic     bool           `json:"is_public"`
	CreatedBy    string         `json:"created_by"`
	UsageCount   int            `json:"usage_count"`
	Rating       float64        `json:"rating"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TemplateCreate is the payload for creating a template.
type TemplateCreate struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Tags         []string       `json:"tags"`
	TemplateData map[string]any `json:"template_data"`
	IsPublic     *bool          `json:"is_public"`
	CreatedBy    string         `json:"created_by"`
}

// TemplateUpdate is a partial update. Nil fields are left untouched.
type TemplateUpdate struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Category     *string         `json:"category"`
	Tags         *[]string       `json:"tags"`
	TemplateData *map[string]any `json:"template_data"`
	IsPublic     *bool           `json:"is_public"`
}

// TemplateFilter selects templates by exact match on the set fields.
type TemplateFilter struct {
	Category  string
	IsPublic  *bool
	CreatedBy string
}
