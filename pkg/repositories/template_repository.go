package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/database"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
)

const templateColumns = `id, name, description, category, tags, template_data, is_public, created_by, usage_count, rating, created_at, updated_at`

// TemplateRepository defines the interface for template data access.
type TemplateRepository interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error)
	GetByID(ctx context.Context, id string) (*models.Template, error)
	Insert(ctx context.Context, template *models.Template) error
	// Update applies the recorded field assignments and returns the refreshed
	// record. Returns apperrors.ErrNotFound if no row matches.
	Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Template, error)
	Delete(ctx context.Context, id string) error
	// IncrementUsage atomically bumps usage_count by one.
	IncrementUsage(ctx context.Context, id string) error
	// UpdateRating overwrites the stored running-average rating.
	UpdateRating(ctx context.Context, id string, rating float64) error
	// Categories returns the distinct category values in use.
	Categories(ctx context.Context) ([]string, error)
	CountByCreator(ctx context.Context, userID string) (int, error)
}

// templateRepository implements TemplateRepository using PostgreSQL.
type templateRepository struct {
	db *database.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *database.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func scanTemplate(row pgx.Row) (*models.Template, error) {
	var tpl models.Template
	var tagsJSON, dataJSON []byte
	err := row.Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.Description,
		&tpl.Category,
		&tagsJSON,
		&dataJSON,
		&tpl.IsPublic,
		&tpl.CreatedBy,
		&tpl.UsageCount,
		&tpl.Rating,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsJSON, &tpl.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(dataJSON, &tpl.TemplateData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template data: %w", err)
	}
	return &tpl, nil
}

// List retrieves templates matching the filter. Unset filter fields impose
// no constraint.
func (r *templateRepository) List(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM templates`, templateColumns)
	var conditions []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.IsPublic != nil {
		args = append(args, *filter.IsPublic)
		conditions = append(conditions, fmt.Sprintf("is_public = $%d", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += fmt.Sprintf(" LIMIT %d", listLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// GetByID retrieves a template by ID.
func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM templates WHERE id = $1`, templateColumns)

	tpl, err := scanTemplate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return tpl, nil
}

// Insert persists a new template.
func (r *templateRepository) Insert(ctx context.Context, template *models.Template) error {
	tagsJSON, err := json.Marshal(template.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	dataJSON, err := json.Marshal(template.TemplateData)
	if err != nil {
		return fmt.Errorf("failed to marshal template data: %w", err)
	}

	query := `
		INSERT INTO templates (id, name, description, category, tags, template_data, is_public, created_by, usage_count, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		template.ID,
		template.Name,
		template.Description,
		template.Category,
		tagsJSON,
		dataJSON,
		template.IsPublic,
		template.CreatedBy,
		template.UsageCount,
		template.Rating,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	return nil
}

// Update applies the recorded field assignments and returns the refreshed record.
func (r *templateRepository) Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Template, error) {
	clause, args, next := updates.Clause()
	query := fmt.Sprintf(`UPDATE templates SET %s WHERE id = $%d RETURNING %s`, clause, next, templateColumns)
	args = append(args, id)

	tpl, err := scanTemplate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return tpl, nil
}

// Delete removes a template.
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementUsage atomically bumps usage_count by one.
func (r *templateRepository) IncrementUsage(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `UPDATE templates SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment usage count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRating overwrites the stored running-average rating.
func (r *templateRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	result, err := r.db.Exec(ctx, `UPDATE templates SET rating = $1 WHERE id = $2`, rating, id)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Categories returns the distinct category values in use.
func (r *templateRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM templates ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CountByCreator returns the number of templates created by a user.
func (r *templateRepository) CountByCreator(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM templates WHERE created_by = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}

// Ensure templateRepository implements TemplateRepository at compile time.
var _ TemplateRepository = (*templateRepository)(nil)
