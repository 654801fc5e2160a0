package repositories

import (
	"fmt"
	"strings"

	"github.com/lmicro/gomero/internal/models"
)

// CacheAdapter records browsed remote objects in the local cache.
//
// Provides automatic caching with deduplication via remote_id constraints.
// Entries already present are updated in place when their metadata changed.
type CacheAdapter struct {
	images *ImageRepository
	tags   *TagRepository
}

// NewCacheAdapter creates a new CacheAdapter over the given repositories
func NewCacheAdapter(images *ImageRepository, tags *TagRepository) *CacheAdapter {
	return &CacheAdapter{images: images, tags: tags}
}

// CacheImage records a browsed image. Existing entries are refreshed when the
// name or description changed; duplicate inserts are silently ignored.
func (a *CacheAdapter) CacheImage(datasetID int64, image models.Image) error {
	existing, err := a.images.GetByRemoteID(image.ID)
	if err == nil && existing != nil {
		if existing.Name() == image.Name && existing.Description() == image.Description {
			return nil
		}
		existing.SetName(image.Name)
		existing.SetDescription(image.Description)
		if err := a.images.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached image: %w", err)
		}
		return nil
	}

	sequence, err := NextSequence(a.images.db, "images")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	cached := models.NewCachedImage(sequence, datasetID, image)
	if err := a.images.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache image: %w", err)
	}

	return nil
}

// CacheTag records a browsed tag annotation with the same refresh semantics
// as CacheImage.
func (a *CacheAdapter) CacheTag(tag models.TagAnnotation) error {
	existing, err := a.tags.GetByRemoteID(tag.ID)
	if err == nil && existing != nil {
		if existing.Value() == tag.Value {
			return nil
		}
		existing.SetValue(tag.Value)
		if err := a.tags.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached tag: %w", err)
		}
		return nil
	}

	sequence, err := NextSequence(a.tags.db, "tags")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	cached := models.NewCachedTag(sequence, tag)
	if err := a.tags.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache tag: %w", err)
	}

	return nil
}
