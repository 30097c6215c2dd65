package blueprint

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"prompt2world-server/internal/shared/database"
	"prompt2world-server/internal/worldgen"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing blueprint repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Save persists a generated blueprint. The full document goes into a JSONB
// column; the indexed columns exist for listing and ownership checks.
func (r *Repository) Save(ctx context.Context, bp *worldgen.WorldBlueprint, userID string) error {
	logger := r.logger.With(
		"component", "blueprint_repository",
		"operation", "save",
		"blueprint_id", bp.ID,
		"user_id", userID,
	)
	logger.Debug("Saving blueprint")

	document, err := json.Marshal(bp)
	if err != nil {
		logger.Error("Failed to marshal blueprint", "error", err)
		return fmt.Errorf("failed to marshal blueprint: %w", err)
	}

	query := `
		INSERT INTO world_blueprints (id, user_id, prompt, world_type, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		bp.ID, userID, bp.Prompt, bp.WorldType, document, bp.CreatedAt, bp.UpdatedAt)
	if err != nil {
		logger.Error("Failed to save blueprint", "error", err)
		return fmt.Errorf("failed to save blueprint: %w", err)
	}

	logger.Debug("Blueprint saved")
	return nil
}

// GetByID returns a stored blueprint, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*StoredBlueprint, error) {
	logger := r.logger.With("component", "blueprint_repository", "operation", "get_by_id", "blueprint_id", id)

	var (
		document []byte
		userID   string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT document, user_id FROM world_blueprints WHERE id = $1", id).Scan(&document, &userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to get blueprint", "error", err)
		return nil, fmt.Errorf("failed to get blueprint: %w", err)
	}

	var bp worldgen.WorldBlueprint
	if err := json.Unmarshal(document, &bp); err != nil {
		logger.Error("Failed to unmarshal stored blueprint", "error", err)
		return nil, fmt.Errorf("failed to unmarshal stored blueprint: %w", err)
	}

	return &StoredBlueprint{Blueprint: &bp, UserID: userID}, nil
}

// ListByUser returns blueprint ids owned by a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]worldgen.WorldBlueprint, error) {
	logger := r.logger.With("component", "blueprint_repository", "operation", "list_by_user", "user_id", userID)

	rows, err := r.db.QueryContext(ctx, `
		SELECT document FROM world_blueprints
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list blueprints", "error", err)
		return nil, fmt.Errorf("failed to list blueprints: %w", err)
	}
	defer rows.Close()

	var blueprints []worldgen.WorldBlueprint
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan blueprint row: %w", err)
		}

		var bp worldgen.WorldBlueprint
		if err := json.Unmarshal(document, &bp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored blueprint: %w", err)
		}
		blueprints = append(blueprints, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blueprint rows: %w", err)
	}

	return blueprints, nil
}
