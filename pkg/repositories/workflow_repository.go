package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/database"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
)

const workflowColumns = `id, name, description, nodes, connections, triggers, status, user_id, execution_count, last_execution, created_at, updated_at`

// WorkflowRepository defines the interface for workflow data access.
type WorkflowRepository interface {
	// List retrieves workflows, filtered by owning user when userID is non-empty.
	List(ctx context.Context, userID string) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Insert(ctx context.Context, workflow *models.Workflow) error
	// Update applies the recorded field assignments and returns the refreshed
	// record. Returns apperrors.ErrNotFound if no row matches.
	Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Workflow, error)
	Delete(ctx context.Context, id string) error
	// RecordExecution atomically increments execution_count and sets
	// last_execution. Returns apperrors.ErrNotFound if no row matches.
	RecordExecution(ctx context.Context, id string, at time.Time) error
	CountByUser(ctx context.Context, userID string) (int, error)
}

// workflowRepository implements WorkflowRepository using PostgreSQL.
type workflowRepository struct {
	db *database.DB
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(db *database.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func scanWorkflow(row pgx.Row) (*models.Workflow, error) {
	var wf models.Workflow
	var nodesJSON, connectionsJSON, triggersJSON []byte
	err := row.Scan(
		&wf.ID,
		&wf.Name,
		&wf.Description,
		&nodesJSON,
		&connectionsJSON,
		&triggersJSON,
		&wf.Status,
		&wf.UserID,
		&wf.ExecutionCount,
		&wf.LastExecution,
		&wf.CreatedAt,
		&wf.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(nodesJSON, &wf.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	if err := json.Unmarshal(connectionsJSON, &wf.Connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}
	if err := json.Unmarshal(triggersJSON, &wf.Triggers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal triggers: %w", err)
	}
	return &wf, nil
}

// List retrieves workflows, optionally filtered by owning user.
func (r *workflowRepository) List(ctx context.Context, userID string) ([]*models.Workflow, error) {
	query := fmt.Sprintf(`SELECT %s FROM workflows LIMIT %d`, workflowColumns, listLimit)
	args := []any{}
	if userID != "" {
		query = fmt.Sprintf(`SELECT %s FROM workflows WHERE user_id = $1 LIMIT %d`, workflowColumns, listLimit)
		args = append(args, userID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, wf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}

	return workflows, nil
}

// GetByID retrieves a workflow by ID.
func (r *workflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	query := fmt.Sprintf(`SELECT %s FROM workflows WHERE id = $1`, workflowColumns)

	wf, err := scanWorkflow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	return wf, nil
}

// Insert persists a new workflow.
func (r *workflowRepository) Insert(ctx context.Context, workflow *models.Workflow) error {
	nodesJSON, err := json.Marshal(workflow.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	connectionsJSON, err := json.Marshal(workflow.Connections)
	if err != nil {
		return fmt.Errorf("failed to marshal connections: %w", err)
	}
	triggersJSON, err := json.Marshal(workflow.Triggers)
	if err != nil {
		return fmt.Errorf("failed to marshal triggers: %w", err)
	}

	query := `
		INSERT INTO workflows (id, name, description, nodes, connections, triggers, status, user_id, execution_count, last_execution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		workflow.ID,
		workflow.Name,
		workflow.Description,
		nodesJSON,
		connectionsJSON,
		triggersJSON,
		workflow.Status,
		workflow.UserID,
		workflow.ExecutionCount,
		workflow.LastExecution,
		workflow.CreatedAt,
		workflow.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workflow: %w", err)
	}

	return nil
}

// Update applies the recorded field assignments and returns the refreshed record.
func (r *workflowRepository) Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Workflow, error) {
	clause, args, next := updates.Clause()
	query := fmt.Sprintf(`UPDATE workflows SET %s WHERE id = $%d RETURNING %s`, clause, next, workflowColumns)
	args = append(args, id)

	wf, err := scanWorkflow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return wf, nil
}

// Delete removes a workflow.
func (r *workflowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordExecution atomically increments execution_count and sets last_execution.
func (r *workflowRepository) RecordExecution(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE workflows
		SET execution_count = execution_count + 1, last_execution = $1
		WHERE id = $2`

	result, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountByUser returns the number of workflows owned by a user.
func (r *workflowRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workflows WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workflows: %w", err)
	}
	return count, nil
}

// Ensure workflowRepository implements WorkflowRepository at compile time.
var _ WorkflowRepository = (*workflowRepository)(nil)
