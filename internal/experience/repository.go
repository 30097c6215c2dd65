package experience

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
	logger.Debug("Initializing experience repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const experienceColumns = "id, blueprint_id, user_id, title, description, world_type, play_count, published_at"

// Create inserts a published experience. Returns false when the blueprint is
// already published.
func (r *Repository) Create(ctx context.Context, exp *Experience) (bool, error) {
	logger := r.logger.With(
		"component", "experience_repository",
		"operation", "create",
		"blueprint_id", exp.BlueprintID,
	)
	logger.Debug("Publishing experience")

	query := `
		INSERT INTO experience_cards (id, blueprint_id, user_id, title, description, world_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (blueprint_id) DO NOTHING
		RETURNING published_at
	`

	err := r.db.QueryRowContext(ctx, query,
		exp.ID, exp.BlueprintID, exp.UserID, exp.Title, exp.Description, exp.WorldType,
	).Scan(&exp.PublishedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to publish experience", "error", err)
		return false, fmt.Errorf("failed to publish experience: %w", err)
	}

	return true, nil
}

// GetByID returns a published experience, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Experience, error) {
	logger := r.logger.With("component", "experience_repository", "operation", "get_by_id", "experience_id", id)

	query := fmt.Sprintf("SELECT %s FROM experience_cards WHERE id = $1", experienceColumns)

	var exp Experience
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID,
		&exp.BlueprintID,
		&exp.UserID,
		&exp.Title,
		&exp.Description,
		&exp.WorldType,
		&exp.PlayCount,
		&exp.PublishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to get experience", "error", err)
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return &exp, nil
}

// ListPublic returns published experiences, newest first, optionally filtered
// by world type.
func (r *Repository) ListPublic(ctx context.Context, worldType string, limit, offset int) ([]Experience, error) {
	logger := r.logger.With("component", "experience_repository", "operation", "list_public")

	query := fmt.Sprintf("SELECT %s FROM experience_cards", experienceColumns)
	args := []interface{}{}

	if worldType != "" {
		query += " WHERE world_type = $1"
		args = append(args, worldType)
	}

	query += fmt.Sprintf(" ORDER BY published_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to list experiences", "error", err)
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []Experience
	for rows.Next() {
		var exp Experience
		err := rows.Scan(
			&exp.ID,
			&exp.BlueprintID,
			&exp.UserID,
			&exp.Title,
			&exp.Description,
			&exp.WorldType,
			&exp.PlayCount,
			&exp.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		experiences = append(experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate experience rows: %w", err)
	}

	return experiences, nil
}

// Count returns the number of published experiences, optionally by world type.
func (r *Repository) Count(ctx context.Context, worldType string) (int, error) {
	query := "SELECT COUNT(*) FROM experience_cards"
	args := []interface{}{}

	if worldType != "" {
		query += " WHERE world_type = $1"
		args = append(args, worldType)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	return count, nil
}

// IncrementPlayCount bumps the play counter for an experience.
func (r *Repository) IncrementPlayCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE experience_cards SET play_count = play_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment play count: %w", err)
	}
	return nil
}

// Delete removes a published experience. Returns false when absent.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	logger := r.logger.With("component", "experience_repository", "operation", "delete", "experience_id", id)

	result, err := r.db.ExecContext(ctx, "DELETE FROM experience_cards WHERE id = $1", id)
	if err != nil {
		logger.Error("Failed to delete experience", "error", err)
		return false, fmt.Errorf("failed to delete experience: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
