package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Dataset wraps a remote dataset with navigation, search and annotation
// operations.
type Dataset struct {
	models.Dataset
	annotatable
}

// Images lists the images linked to the dataset, sorted by ID.
func (d *Dataset) Images(ctx context.Context) ([]*Image, error) {
	images, err := d.conn.Browse().DatasetImages(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return d.conn.wrapImages(images), nil
}

// ImagesNamed lists the dataset's images with an exact name match.
func (d *Dataset) ImagesNamed(ctx context.Context, name string) ([]*Image, error) {
	images, err := d.conn.Browse().ImagesNamed(ctx, d.ID, name)
	if err != nil {
		return nil, err
	}
	return d.conn.wrapImages(images), nil
}

// ImagesTagged lists the dataset's images carrying the given tag.
func (d *Dataset) ImagesTagged(ctx context.Context, tagID int64) ([]*Image, error) {
	images, err := d.conn.Browse().DatasetImages(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	tagged, err := d.conn.Browse().ImagesTagged(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return d.conn.wrapImages(intersectByID(images, tagged, func(i models.Image) int64 { return i.ID })), nil
}

// ImagesWithPair lists the dataset's images annotated with the given
// key/value pair.
func (d *Dataset) ImagesWithPair(ctx context.Context, key, value string) ([]*Image, error) {
	images, err := d.conn.Browse().DatasetImages(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	matching, err := d.conn.Browse().ImagesWithPair(ctx, key, value)
	if err != nil {
		return nil, err
	}
	return d.conn.wrapImages(intersectByID(images, matching, func(i models.Image) int64 { return i.ID })), nil
}

// ImportImage uploads a file into the dataset and returns the created image.
func (d *Dataset) ImportImage(ctx context.Context, path string) (*Image, error) {
	image, err := d.conn.Gateway().ImportImage(ctx, d.ID, path)
	if err != nil {
		return nil, err
	}
	return d.conn.wrapImage(*image), nil
}

// AddImages links existing images into the dataset.
func (d *Dataset) AddImages(ctx context.Context, imageIDs ...int64) error {
	return d.conn.Data().Link(ctx, "datasets", d.ID, "images", imageIDs...)
}

// RemoveImage unlinks an image from the dataset without deleting it.
func (d *Dataset) RemoveImage(ctx context.Context, imageID int64) error {
	return d.conn.Data().Unlink(ctx, "datasets", d.ID, "images", imageID)
}

// Save pushes changed dataset fields to the server.
func (d *Dataset) Save(ctx context.Context) error {
	return d.conn.Data().UpdateDataset(ctx, &d.Dataset)
}

// Delete removes the dataset from the server. Linked images survive.
func (d *Dataset) Delete(ctx context.Context) error {
	return d.conn.Data().Delete(ctx, "datasets", d.ID)
}
