package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"prompt2world-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing session repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSession(ctx context.Context, s *Session) error {
	logger := r.logger.With(
		"component", "session_repository",
		"operation", "create_session",
		"user_id", s.UserID,
		"session_id", s.SessionID,
	)
	logger.Debug("Creating session")

	query := `
		INSERT INTO user_sessions (user_id, session_id, token, role, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, s.UserID, s.SessionID, s.Token, s.Role, s.ExpiresAt).Scan(&s.CreatedAt)
	if err != nil {
		logger.Error("Failed to create session", "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	logger.Debug("Session created successfully")
	return nil
}

// GetActiveByToken returns the active, unexpired session for a token, or nil.
func (r *Repository) GetActiveByToken(ctx context.Context, token string) (*Session, error) {
	logger := r.logger.With("component", "session_repository", "operation", "get_active_by_token")

	query := `
		SELECT user_id, session_id, token, role, expires_at, created_at
		FROM user_sessions
		WHERE token = $1 AND is_active = true AND expires_at > NOW()
	`

	var s Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&s.UserID,
		&s.SessionID,
		&s.Token,
		&s.Role,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to query session", "error", err)
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &s, nil
}

// Invalidate deactivates the session holding a token. Returns false when no
// active session matched.
func (r *Repository) Invalidate(ctx context.Context, token string) (bool, error) {
	logger := r.logger.With("component", "session_repository", "operation", "invalidate")
	logger.Debug("Invalidating session")

	result, err := r.db.ExecContext(ctx,
		"UPDATE user_sessions SET is_active = false WHERE token = $1 AND is_active = true", token)
	if err != nil {
		logger.Error("Failed to invalidate session", "error", err)
		return false, fmt.Errorf("failed to invalidate session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to read affected rows", "error", err)
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// DeactivateExpired marks every expired session inactive and returns the count.
func (r *Repository) DeactivateExpired(ctx context.Context) (int64, error) {
	logger := r.logger.With("component", "session_repository", "operation", "deactivate_expired")

	result, err := r.db.ExecContext(ctx,
		"UPDATE user_sessions SET is_active = false WHERE is_active = true AND expires_at <= NOW()")
	if err != nil {
		logger.Error("Failed to deactivate expired sessions", "error", err)
		return 0, fmt.Errorf("failed to deactivate expired sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected > 0 {
		logger.Info("Expired sessions deactivated", "count", affected)
	}
	return affected, nil
}
