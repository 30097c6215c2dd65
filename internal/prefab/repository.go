package prefab

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"prompt2world-server/internal/shared/database"
	"prompt2world-server/internal/worldgen"

	"github.com/lib/pq"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing prefab repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const itemColumns = "id, name, type, description, tags, bounds_x, bounds_y, bounds_z, created_at, updated_at"

func scanItem(row interface{ Scan(...interface{}) error }) (*CatalogItem, error) {
	var item CatalogItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Type,
		&item.Description,
		&item.Tags,
		&item.Bounds.X,
		&item.Bounds.Y,
		&item.Bounds.Z,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns catalog items ordered by id, optionally filtered by prefab type.
func (r *Repository) List(ctx context.Context, prefabType *worldgen.PrefabType, limit, offset int) ([]CatalogItem, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "list")

	query := fmt.Sprintf("SELECT %s FROM prefab_catalog", itemColumns)
	args := []interface{}{}

	if prefabType != nil {
		query += " WHERE type = $1"
		args = append(args, *prefabType)
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to list catalog items", "error", err)
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Count returns the number of catalog items, optionally filtered by type.
func (r *Repository) Count(ctx context.Context, prefabType *worldgen.PrefabType) (int, error) {
	query := "SELECT COUNT(*) FROM prefab_catalog"
	args := []interface{}{}

	if prefabType != nil {
		query += " WHERE type = $1"
		args = append(args, *prefabType)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return count, nil
}

// GetByID returns the catalog item with the given id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*CatalogItem, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "get_by_id", "prefab_id", id)

	query := fmt.Sprintf("SELECT %s FROM prefab_catalog WHERE id = $1", itemColumns)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to get catalog item", "error", err)
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return item, nil
}

// Search returns items whose name, description, or tag set matches the query
// text. Name and description match as substrings, tags match exactly.
func (r *Repository) Search(ctx context.Context, text string, limit, offset int) ([]CatalogItem, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "search")

	query := fmt.Sprintf(`
		SELECT %s FROM prefab_catalog
		WHERE name ILIKE $1 OR description ILIKE $1 OR tags ? lower($2)
		ORDER BY id
		LIMIT $3 OFFSET $4
	`, itemColumns)

	rows, err := r.db.QueryContext(ctx, query, "%"+text+"%", text, limit, offset)
	if err != nil {
		logger.Error("Failed to search catalog", "error", err)
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// QueryByTags returns every item whose tag set intersects the given tags.
// Used by the generation pipeline, so it has no pagination: callers cap the
// result downstream.
func (r *Repository) QueryByTags(ctx context.Context, tags []string) ([]CatalogItem, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "query_by_tags")

	if len(tags) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM prefab_catalog
		WHERE tags ?| $1
		ORDER BY id
	`, itemColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(tags))
	if err != nil {
		logger.Error("Failed to query catalog by tags", "error", err)
		return nil, fmt.Errorf("failed to query catalog by tags: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Create inserts a new catalog item. Returns false when the id already exists.
func (r *Repository) Create(ctx context.Context, item *CatalogItem) (bool, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "create", "prefab_id", item.ID)
	logger.Debug("Creating catalog item")

	query := `
		INSERT INTO prefab_catalog (id, name, type, description, tags, bounds_x, bounds_y, bounds_z)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Type, item.Description, item.Tags,
		item.Bounds.X, item.Bounds.Y, item.Bounds.Z,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to create catalog item", "error", err)
		return false, fmt.Errorf("failed to create catalog item: %w", err)
	}

	logger.Debug("Catalog item created")
	return true, nil
}

// Update rewrites a catalog item in place. Returns false when the id is absent.
func (r *Repository) Update(ctx context.Context, item *CatalogItem) (bool, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "update", "prefab_id", item.ID)
	logger.Debug("Updating catalog item")

	query := `
		UPDATE prefab_catalog
		SET name = $2, type = $3, description = $4, tags = $5,
		    bounds_x = $6, bounds_y = $7, bounds_z = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Type, item.Description, item.Tags,
		item.Bounds.X, item.Bounds.Y, item.Bounds.Z,
	).Scan(&item.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to update catalog item", "error", err)
		return false, fmt.Errorf("failed to update catalog item: %w", err)
	}

	return true, nil
}

// Delete removes a catalog item. Returns false when the id is absent.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	logger := r.logger.With("component", "prefab_repository", "operation", "delete", "prefab_id", id)
	logger.Debug("Deleting catalog item")

	result, err := r.db.ExecContext(ctx, "DELETE FROM prefab_catalog WHERE id = $1", id)
	if err != nil {
		logger.Error("Failed to delete catalog item", "error", err)
		return false, fmt.Errorf("failed to delete catalog item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func collectItems(rows *sql.Rows) ([]CatalogItem, error) {
	var items []CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog items: %w", err)
	}
	return items, nil
}
