package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
	"github.com/agentforge-ai/agentforge-engine/pkg/database"
	"github.com/agentforge-ai/agentforge-engine/pkg/models"
)

const userColumns = `id, email, username, is_active, subscription_plan, usage_stats, created_at, updated_at`

// UserRepository defines the interface for user data access.
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Insert persists a new user. Returns apperrors.ErrConflict on a
	// unique-index violation (email or username already taken).
	Insert(ctx context.Context, user *models.User) error
	// Update applies the recorded field assignments and returns the refreshed
	// record. Returns apperrors.ErrNotFound if no row matches and
	// apperrors.ErrConflict on a unique-index violation.
	Update(ctx context.Context, id string, updates *FieldUpdates) (*models.User, error)
	Delete(ctx context.Context, id string) error
	// EmailExists reports whether any user other than excludeID has the email.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var statsJSON []byte
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.IsActive,
		&user.SubscriptionPlan,
		&statsJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(statsJSON, &user.UsageStats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage stats: %w", err)
	}
	return &user, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (error code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// List retrieves all users.
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users LIMIT %d`, userColumns, listLimit)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Insert persists a new user.
func (r *userRepository) Insert(ctx context.Context, user *models.User) error {
	statsJSON, err := json.Marshal(user.UsageStats)
	if err != nil {
		return fmt.Errorf("failed to marshal usage stats: %w", err)
	}

	query := `
		INSERT INTO users (id, email, username, is_active, subscription_plan, usage_stats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.IsActive,
		user.SubscriptionPlan,
		statsJSON,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Update applies the recorded field assignments and returns the refreshed record.
func (r *userRepository) Update(ctx context.Context, id string, updates *FieldUpdates) (*models.User, error) {
	clause, args, next := updates.Clause()
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`, clause, next, userColumns)
	args = append(args, id)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user. Owned agents, workflows, templates and sessions are
// left in place.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// EmailExists reports whether any user other than excludeID has the email.
func (r *userRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1 AND id <> $2`, email, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// UsernameExists reports whether any user has the username.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// Ensure userRepository implements UserRepository at compile time.
var _ UserRepository = (*userRepository)(nil)
