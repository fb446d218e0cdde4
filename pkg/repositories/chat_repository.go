package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/database"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
)

const (
	sessionColumns = `id, agent_id, user_id, is_active, message_count, created_at, updated_at`
	messageColumns = `id, agent_id, session_id, user_message, agent_response, timestamp, response_time, tokens_used`

	sessionListLimit = 100
)

// ChatRepository defines the interface for chat session and message data
// access. Messages are append-only.
type ChatRepository interface {
	InsertSession(ctx context.Context, session *models.ChatSession) error
	GetSession(ctx context.Context, id string) (*models.ChatSession, error)
	ListSessionsByAgent(ctx context.Context, agentID string) ([]*models.ChatSession, error)
	// BumpSession refreshes updated_at and atomically increments
	// message_count by one.
	BumpSession(ctx context.Context, id string, at time.Time) error
	CountSessionsByUser(ctx context.Context, userID string) (int, error)

	InsertMessage(ctx context.Context, message *models.ChatMessage) error
	// ListRecentMessages returns up to limit messages for a session,
	// newest first.
	ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error)
	// ListSessionMessages returns the full transcript for an agent's session,
	// oldest first.
	ListSessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error)
}

// chatRepository implements ChatRepository using PostgreSQL.
type chatRepository struct {
	db *database.DB
}

// NewChatRepository creates a new chat repository.
func NewChatRepository(db *database.DB) ChatRepository {
	return &chatRepository{db: db}
}

func scanSession(row pgx.Row) (*models.ChatSession, error) {
	var session models.ChatSession
	err := row.Scan(
		&session.ID,
		&session.AgentID,
		&session.UserID,
		&session.IsActive,
		&session.MessageCount,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func scanMessage(row pgx.Row) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := row.Scan(
		&msg.ID,
		&msg.AgentID,
		&msg.SessionID,
		&msg.UserMessage,
		&msg.AgentResponse,
		&msg.Timestamp,
		&msg.ResponseTime,
		&msg.TokensUsed,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// InsertSession persists a new chat session.
func (r *chatRepository) InsertSession(ctx context.Context, session *models.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (id, agent_id, user_id, is_active, message_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.AgentID,
		session.UserID,
		session.IsActive,
		session.MessageCount,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSession retrieves a chat session by ID.
func (r *chatRepository) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE id = $1`, sessionColumns)

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ListSessionsByAgent retrieves sessions bound to an agent.
func (r *chatRepository) ListSessionsByAgent(ctx context.Context, agentID string) ([]*models.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE agent_id = $1 LIMIT %d`, sessionColumns, sessionListLimit)

	rows, err := r.db.Query(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.ChatSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// BumpSession refreshes updated_at and atomically increments message_count.
func (r *chatRepository) BumpSession(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE chat_sessions
		SET updated_at = $1, message_count = message_count + 1
		WHERE id = $2`

	result, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to bump session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountSessionsByUser returns the number of sessions owned by a user.
func (r *chatRepository) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// InsertMessage persists a new chat message.
func (r *chatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, agent_id, session_id, user_message, agent_response, timestamp, response_time, tokens_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.AgentID,
		message.SessionID,
		message.UserMessage,
		message.AgentResponse,
		message.Timestamp,
		message.ResponseTime,
		message.TokensUsed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// ListRecentMessages returns up to limit messages for a session, newest first.
func (r *chatRepository) ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_messages WHERE session_id = $1 ORDER BY timestamp DESC LIMIT $2`, messageColumns)

	rows, err := r.db.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// ListSessionMessages returns the full transcript for an agent's session,
// oldest first.
func (r *chatRepository) ListSessionMessages(ctx context.Context, agentID, sessionID string) ([]*models.ChatMessage, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_messages WHERE agent_id = $1 AND session_id = $2 ORDER BY timestamp ASC LIMIT %d`, messageColumns, listLimit)

	rows, err := r.db.Query(ctx, query, agentID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// Ensure chatRepository implements ChatRepository at compile time.
var _ ChatRepository = (*chatRepository)(nil)
