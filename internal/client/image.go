package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Image wraps a remote image with ROI, container and annotation operations.
type Image struct {
	models.Image
	annotatable
}

// ROIs lists the regions of interest drawn on the image.
func (i *Image) ROIs(ctx context.Context) ([]models.ROI, error) {
	return i.conn.Browse().ImageROIs(ctx, i.ID)
}

// SaveROIs attaches regions of interest to the image and returns them with
// server-assigned IDs.
func (i *Image) SaveROIs(ctx context.Context, rois []models.ROI) ([]models.ROI, error) {
	return i.conn.Data().SaveROIs(ctx, i.ID, rois)
}

// Datasets lists the datasets the image is linked into, sorted by ID.
func (i *Image) Datasets(ctx context.Context) ([]*Dataset, error) {
	datasets, err := i.conn.Browse().ImageDatasets(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	datasets = distinctByID(datasets, func(d models.Dataset) int64 { return d.ID })

	wrapped := make([]*Dataset, len(datasets))
	for idx, d := range datasets {
		wrapped[idx] = i.conn.wrapDataset(d)
	}
	return wrapped, nil
}

// Folders lists the folders the image is filed under, sorted by ID.
func (i *Image) Folders(ctx context.Context) ([]*Folder, error) {
	folders, err := i.conn.Browse().ImageFolders(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	folders = distinctByID(folders, func(f models.Folder) int64 { return f.ID })

	wrapped := make([]*Folder, len(folders))
	for idx, f := range folders {
		wrapped[idx] = i.conn.wrapFolder(f)
	}
	return wrapped, nil
}

// Thumbnail fetches a rendered JPEG preview at the given longest-side size.
func (i *Image) Thumbnail(ctx context.Context, size int) ([]byte, error) {
	return i.conn.Gateway().Thumbnail(ctx, i.ID, size)
}

// ParentCount counts the containers holding the image, optionally ignoring
// one dataset. Zero means the image is an orphan.
func (i *Image) ParentCount(ctx context.Context, excludeDataset int64) (int, error) {
	return i.conn.Browse().ImageParentCount(ctx, i.ID, excludeDataset)
}

// Save pushes changed image fields to the server.
func (i *Image) Save(ctx context.Context) error {
	return i.conn.Data().UpdateImage(ctx, &i.Image)
}

// Delete removes the image from the server entirely.
func (i *Image) Delete(ctx context.Context) error {
	return i.conn.Data().Delete(ctx, "images", i.ID)
}
