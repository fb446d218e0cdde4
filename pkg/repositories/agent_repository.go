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

const agentColumns = `id, name, description, model, system_prompt, tools, memory_enabled, status, user_id, performance_metrics, created_at, updated_at`

// AgentRepository defines the interface for agent data access.
type AgentRepository interface {
	// List retrieves agents, filtered by owning user when userID is non-empty.
	List(ctx context.Context, userID string) ([]*models.Agent, error)
	GetByID(ctx context.Context, id string) (*models.Agent, error)
	Insert(ctx context.Context, agent *models.Agent) error
	// Update applies the recorded field assignments and returns the refreshed
	// record. Returns apperrors.ErrNotFound if no row matches.
	Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Agent, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}

// agentRepository implements AgentRepository using PostgreSQL.
type agentRepository struct {
	db *database.DB
}

// NewAgentRepository creates a new agent repository.
func NewAgentRepository(db *database.DB) AgentRepository {
	return &agentRepository{db: db}
}

func scanAgent(row pgx.Row) (*models.Agent, error) {
	var agent models.Agent
	var toolsJSON, metricsJSON []byte
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Description,
		&agent.Model,
		&agent.SystemPrompt,
		&toolsJSON,
		&agent.MemoryEnabled,
		&agent.Status,
		&agent.UserID,
		&metricsJSON,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(toolsJSON, &agent.Tools); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tools: %w", err)
	}
	if err := json.Unmarshal(metricsJSON, &agent.PerformanceMetrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal performance metrics: %w", err)
	}
	return &agent, nil
}

// List retrieves agents, optionally filtered by owning user.
func (r *agentRepository) List(ctx context.Context, userID string) ([]*models.Agent, error) {
	query := fmt.Sprintf(`SELECT %s FROM agents LIMIT %d`, agentColumns, listLimit)
	args := []any{}
	if userID != "" {
		query = fmt.Sprintf(`SELECT %s FROM agents WHERE user_id = $1 LIMIT %d`, agentColumns, listLimit)
		args = append(args, userID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*models.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agents: %w", err)
	}

	return agents, nil
}

// GetByID retrieves an agent by ID.
func (r *agentRepository) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	query := fmt.Sprintf(`SELECT %s FROM agents WHERE id = $1`, agentColumns)

	agent, err := scanAgent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return agent, nil
}

// Insert persists a new agent.
func (r *agentRepository) Insert(ctx context.Context, agent *models.Agent) error {
	toolsJSON, err := json.Marshal(agent.Tools)
	if err != nil {
		return fmt.Errorf("failed to marshal tools: %w", err)
	}
	metricsJSON, err := json.Marshal(agent.PerformanceMetrics)
	if err != nil {
		return fmt.Errorf("failed to marshal performance metrics: %w", err)
	}

	query := `
		INSERT INTO agents (id, name, description, model, system_prompt, tools, memory_enabled, status, user_id, performance_metrics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		agent.ID,
		agent.Name,
		agent.Description,
		agent.Model,
		agent.SystemPrompt,
		toolsJSON,
		agent.MemoryEnabled,
		agent.Status,
		agent.UserID,
		metricsJSON,
		agent.CreatedAt,
		agent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert agent: %w", err)
	}

	return nil
}

// Update applies the recorded field assignments and returns the refreshed record.
func (r *agentRepository) Update(ctx context.Context, id string, updates *FieldUpdates) (*models.Agent, error) {
	clause, args, next := updates.Clause()
	query := fmt.Sprintf(`UPDATE agents SET %s WHERE id = $%d RETURNING %s`, clause, next, agentColumns)
	args = append(args, id)

	agent, err := scanAgent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	return agent, nil
}

// Delete removes an agent. Dependent sessions and messages are left in place.
func (r *agentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountByUser returns the number of agents owned by a user.
func (r *agentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM agents WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agents: %w", err)
	}
	return count, nil
}

// Ensure agentRepository implements AgentRepository at compile time.
var _ AgentRepository = (*agentRepository)(nil)
