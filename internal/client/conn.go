package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Flat operations used by batch jobs. These avoid wrapper allocation on hot
// paths and let job code depend on a narrow interface instead of the full
// wrapper surface.

// ImportImage uploads a file into a dataset and returns the created image.
func (c *Client) ImportImage(ctx context.Context, datasetID int64, path string) (*models.Image, error) {
	return c.gw.ImportImage(ctx, datasetID, path)
}

// ImagesNamed lists raw images in a dataset with an exact name match.
func (c *Client) ImagesNamed(ctx context.Context, datasetID int64, name string) ([]models.Image, error) {
	return c.Browse().ImagesNamed(ctx, datasetID, name)
}

// AnnotationIDs lists the IDs of every annotation linked to an object.
func (c *Client) AnnotationIDs(ctx context.Context, objType string, objID int64) ([]int64, error) {
	annotations, err := c.Browse().Annotations(ctx, objType, objID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(annotations))
	for i, ann := range annotations {
		ids[i] = ann.ID
	}
	return ids, nil
}

// LinkImageAnnotations links existing annotations to an image.
func (c *Client) LinkImageAnnotations(ctx context.Context, imageID int64, annotationIDs []int64) error {
	return c.Data().LinkAnnotations(ctx, "images", imageID, annotationIDs...)
}

// ImageROIs lists the regions of interest drawn on an image.
func (c *Client) ImageROIs(ctx context.Context, imageID int64) ([]models.ROI, error) {
	return c.Browse().ImageROIs(ctx, imageID)
}

// SaveImageROIs attaches regions of interest to an image.
func (c *Client) SaveImageROIs(ctx context.Context, imageID int64, rois []models.ROI) ([]models.ROI, error) {
	return c.Data().SaveROIs(ctx, imageID, rois)
}

// ImageFolders lists the folders an image is filed under.
func (c *Client) ImageFolders(ctx context.Context, imageID int64) ([]models.Folder, error) {
	return c.Browse().ImageFolders(ctx, imageID)
}

// ImageDatasets lists the datasets an image is linked into.
func (c *Client) ImageDatasets(ctx context.Context, imageID int64) ([]models.Dataset, error) {
	return c.Browse().ImageDatasets(ctx, imageID)
}

// LinkFolderImage files an image under a folder.
func (c *Client) LinkFolderImage(ctx context.Context, folderID, imageID int64) error {
	return c.Data().Link(ctx, "folders", folderID, "images", imageID)
}

// UnlinkFolderImage removes an image from a folder.
func (c *Client) UnlinkFolderImage(ctx context.Context, folderID, imageID int64) error {
	return c.Data().Unlink(ctx, "folders", folderID, "images", imageID)
}

// UpdateImage pushes changed image fields to the server.
func (c *Client) UpdateImage(ctx context.Context, image *models.Image) error {
	return c.Data().UpdateImage(ctx, image)
}

// UnlinkImage removes an image from a dataset without deleting it.
func (c *Client) UnlinkImage(ctx context.Context, datasetID, imageID int64) error {
	return c.Data().Unlink(ctx, "datasets", datasetID, "images", imageID)
}

// DeleteImage removes an image from the server entirely.
func (c *Client) DeleteImage(ctx context.Context, imageID int64) error {
	return c.Data().Delete(ctx, "images", imageID)
}

// ImageParentCount counts the containers holding an image, optionally
// ignoring one dataset.
func (c *Client) ImageParentCount(ctx context.Context, imageID int64, excludeDataset int64) (int, error) {
	return c.Browse().ImageParentCount(ctx, imageID, excludeDataset)
}

// TagImage links a tag annotation to an image.
func (c *Client) TagImage(ctx context.Context, imageID, tagID int64) error {
	return c.Data().LinkAnnotations(ctx, "images", imageID, tagID)
}
