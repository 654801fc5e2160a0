package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// TagRepository implements models.Repository[*models.CachedTag] for the local
// tag annotation cache.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository with the given database connection
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new [models.CachedTag] into the database with generated ID and sequence
func (r *TagRepository) Create(tag *models.CachedTag) error {
	id := shared.GenerateID()
	tag.SetID(id)

	if err := tag.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tags (id, sequence, remote_id, value, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		tag.Sequence(),
		tag.RemoteID(),
		tag.Value(),
		tag.Description(),
		tag.CreatedAt(),
		tag.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}

	return nil
}

// Get retrieves a cached tag by ID, excluding soft-deleted entries
func (r *TagRepository) Get(id string) (*models.CachedTag, error) {
	query := `
		SELECT id, sequence, remote_id, value, description, created_at, updated_at, deleted_at
		FROM tags
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached tag by its server-side ID
func (r *TagRepository) GetByRemoteID(remoteID int64) (*models.CachedTag, error) {
	query := `
		SELECT id, sequence, remote_id, value, description, created_at, updated_at, deleted_at
		FROM tags
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached tag in the database
func (r *TagRepository) Update(tag *models.CachedTag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	tag.SetUpdatedAt(now)

	query := `
		UPDATE tags
		SET value = ?, description = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, tag.Value(), tag.Description(), now, tag.ID())
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tag not found or already deleted: %s", tag.ID())
	}

	return nil
}

// Delete soft-deletes a cached tag by ID
func (r *TagRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE tags
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tag not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached tags matching the given criteria, excluding soft-deleted entries
func (r *TagRepository) List(criteria map[string]any) ([]*models.CachedTag, error) {
	query := `
		SELECT id, sequence, remote_id, value, description, created_at, updated_at, deleted_at
		FROM tags
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if value, ok := criteria["value"].(string); ok && value != "" {
		query += " AND value = ?"
		args = append(args, value)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.CachedTag
	for rows.Next() {
		tag, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tags, nil
}

// scanOne scans a single [sql.Row] into a [models.CachedTag]
func (r *TagRepository) scanOne(row *sql.Row) (*models.CachedTag, error) {
	var (
		id          string
		sequence    int
		remoteID    int64
		value       string
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &value, &description, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}

	return models.RehydrateCachedTag(id, sequence, remoteID, value, description.String, createdAt, updatedAt, nullTimePtr(deletedAt)), nil
}

// scanRow scans a [sql.Rows] cursor position into a [models.CachedTag]
func (r *TagRepository) scanRow(rows *sql.Rows) (*models.CachedTag, error) {
	var (
		id          string
		sequence    int
		remoteID    int64
		value       string
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &remoteID, &value, &description, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}

	return models.RehydrateCachedTag(id, sequence, remoteID, value, description.String, createdAt, updatedAt, nullTimePtr(deletedAt)), nil
}
