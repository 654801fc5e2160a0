package models

import (
	"fmt"
	"time"
)

// CachedImage is a locally persisted copy of a remote image's metadata,
// recorded while browsing so listings keep working offline.
type CachedImage struct {
	id          string
	sequence    int
	remoteID    int64
	datasetID   int64
	name        string
	description string
	acquiredAt  time.Time
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewCachedImage creates a cache entry for a remote image linked to a dataset.
func NewCachedImage(sequence int, datasetID int64, image Image) *CachedImage {
	now := time.Now()
	return &CachedImage{
		sequence:    sequence,
		remoteID:    image.ID,
		datasetID:   datasetID,
		name:        image.Name,
		description: image.Description,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RehydrateCachedImage reconstructs a cache entry from database columns.
func RehydrateCachedImage(id string, sequence int, remoteID, datasetID int64, name, description string, acquiredAt, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedImage {
	return &CachedImage{
		id:          id,
		sequence:    sequence,
		remoteID:    remoteID,
		datasetID:   datasetID,
		name:        name,
		description: description,
		acquiredAt:  acquiredAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}
}

func (c *CachedImage) ID() string            { return c.id }
func (c *CachedImage) Sequence() int         { return c.sequence }
func (c *CachedImage) RemoteID() int64       { return c.remoteID }
func (c *CachedImage) DatasetID() int64      { return c.datasetID }
func (c *CachedImage) Name() string          { return c.name }
func (c *CachedImage) Description() string   { return c.description }
func (c *CachedImage) AcquiredAt() time.Time { return c.acquiredAt }
func (c *CachedImage) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedImage) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedImage) DeletedAt() *time.Time { return c.deletedAt }

func (c *CachedImage) SetID(id string)            { c.id = id }
func (c *CachedImage) SetName(name string)        { c.name = name }
func (c *CachedImage) SetDescription(desc string) { c.description = desc }
func (c *CachedImage) SetUpdatedAt(t time.Time)   { c.updatedAt = t }
func (c *CachedImage) SetDeletedAt(t *time.Time)  { c.deletedAt = t }

// Validate checks that the cache entry references a real remote image.
func (c *CachedImage) Validate() error {
	if c.remoteID <= 0 {
		return fmt.Errorf("cached image requires a positive remote ID")
	}
	if c.name == "" {
		return fmt.Errorf("cached image requires a name")
	}
	return nil
}

// CachedTag is a locally persisted copy of a remote tag annotation.
type CachedTag struct {
	id          string
	sequence    int
	remoteID    int64
	value       string
	description string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewCachedTag creates a cache entry for a remote tag annotation.
func NewCachedTag(sequence int, tag TagAnnotation) *CachedTag {
	now := time.Now()
	return &CachedTag{
		sequence:    sequence,
		remoteID:    tag.ID,
		value:       tag.Value,
		description: tag.Description,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RehydrateCachedTag reconstructs a cache entry from database columns.
func RehydrateCachedTag(id string, sequence int, remoteID int64, value, description string, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedTag {
	return &CachedTag{
		id:          id,
		sequence:    sequence,
		remoteID:    remoteID,
		value:       value,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}
}

func (c *CachedTag) ID() string            { return c.id }
func (c *CachedTag) Sequence() int         { return c.sequence }
func (c *CachedTag) RemoteID() int64       { return c.remoteID }
func (c *CachedTag) Value() string         { return c.value }
func (c *CachedTag) Description() string   { return c.description }
func (c *CachedTag) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedTag) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedTag) DeletedAt() *time.Time { return c.deletedAt }

func (c *CachedTag) SetID(id string)           { c.id = id }
func (c *CachedTag) SetValue(value string)     { c.value = value }
func (c *CachedTag) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *CachedTag) SetDeletedAt(t *time.Time) { c.deletedAt = t }

// Validate checks that the cache entry references a real remote tag.
func (c *CachedTag) Validate() error {
	if c.remoteID <= 0 {
		return fmt.Errorf("cached tag requires a positive remote ID")
	}
	if c.value == "" {
		return fmt.Errorf("cached tag requires a value")
	}
	return nil
}
