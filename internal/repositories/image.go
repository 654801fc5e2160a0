package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// ImageRepository implements models.Repository[*models.CachedImage] for the
// local image metadata cache.
//
// Browsed images are cached on every fetch so listings keep working offline.
type ImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new ImageRepository with the given database connection
func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create inserts a new [models.CachedImage] into the database with generated ID and sequence
func (r *ImageRepository) Create(image *models.CachedImage) error {
	id := shared.GenerateID()
	image.SetID(id)

	if err := image.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO images (id, sequence, remote_id, dataset_id, name, description, acquired_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		image.Sequence(),
		image.RemoteID(),
		image.DatasetID(),
		image.Name(),
		image.Description(),
		nullableTime(image.AcquiredAt()),
		image.CreatedAt(),
		image.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}

// Get retrieves a cached image by ID, excluding soft-deleted entries
func (r *ImageRepository) Get(id string) (*models.CachedImage, error) {
	query := `
		SELECT id, sequence, remote_id, dataset_id, name, description, acquired_at, created_at, updated_at, deleted_at
		FROM images
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached image by its server-side ID
func (r *ImageRepository) GetByRemoteID(remoteID int64) (*models.CachedImage, error) {
	query := `
		SELECT id, sequence, remote_id, dataset_id, name, description, acquired_at, created_at, updated_at, deleted_at
		FROM images
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached image in the database
func (r *ImageRepository) Update(image *models.CachedImage) error {
	if err := image.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	image.SetUpdatedAt(now)

	query := `
		UPDATE images
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		image.Name(),
		image.Description(),
		now,
		image.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("image not found or already deleted: %s", image.ID())
	}

	return nil
}

// Delete soft-deletes a cached image by ID
func (r *ImageRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE images
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("image not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached images matching the given criteria, excluding soft-deleted entries
func (r *ImageRepository) List(criteria map[string]any) ([]*models.CachedImage, error) {
	query := `
		SELECT id, sequence, remote_id, dataset_id, name, description, acquired_at, created_at, updated_at, deleted_at
		FROM images
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if datasetID, ok := criteria["dataset_id"].(int64); ok && datasetID > 0 {
		query += " AND dataset_id = ?"
		args = append(args, datasetID)
	}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []*models.CachedImage
	for rows.Next() {
		image, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return images, nil
}

// scanOne scans a single [sql.Row] into a [models.CachedImage]
func (r *ImageRepository) scanOne(row *sql.Row) (*models.CachedImage, error) {
	var (
		id          string
		sequence    int
		remoteID    int64
		datasetID   int64
		name        string
		description sql.NullString
		acquiredAt  sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &datasetID, &name, &description, &acquiredAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan image: %w", err)
	}

	return models.RehydrateCachedImage(id, sequence, remoteID, datasetID, name, description.String, acquiredAt.Time, createdAt, updatedAt, nullTimePtr(deletedAt)), nil
}

// scanRow scans a [sql.Rows] cursor position into a [models.CachedImage]
func (r *ImageRepository) scanRow(rows *sql.Rows) (*models.CachedImage, error) {
	var (
		id          string
		sequence    int
		remoteID    int64
		datasetID   int64
		name        string
		description sql.NullString
		acquiredAt  sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &remoteID, &datasetID, &name, &description, &acquiredAt, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan image: %w", err)
	}

	return models.RehydrateCachedImage(id, sequence, remoteID, datasetID, name, description.String, acquiredAt.Time, createdAt, updatedAt, nullTimePtr(deletedAt)), nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
