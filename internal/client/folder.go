package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Folder wraps a remote folder. Folders hold images and ROIs and may nest.
type Folder struct {
	models.Folder
	annotatable
}

// Children lists the folder's subfolders, sorted by ID.
func (f *Folder) Children(ctx context.Context) ([]*Folder, error) {
	folders, err := f.conn.Browse().FolderChildren(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	folders = distinctByID(folders, func(c models.Folder) int64 { return c.ID })

	wrapped := make([]*Folder, len(folders))
	for i, c := range folders {
		wrapped[i] = f.conn.wrapFolder(c)
	}
	return wrapped, nil
}

// Images lists the images filed under the folder, sorted by ID.
func (f *Folder) Images(ctx context.Context) ([]*Image, error) {
	images, err := f.conn.Browse().FolderImages(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	return f.conn.wrapImages(images), nil
}

// ROIs lists the regions of interest filed under the folder.
func (f *Folder) ROIs(ctx context.Context) ([]models.ROI, error) {
	return f.conn.Browse().FolderROIs(ctx, f.ID)
}

// NewChild creates a subfolder under the folder.
func (f *Folder) NewChild(ctx context.Context, name, description string) (*Folder, error) {
	child, err := f.conn.Data().CreateFolder(ctx, f.ID, name, description)
	if err != nil {
		return nil, err
	}
	return f.conn.wrapFolder(*child), nil
}

// AddImage files an image under the folder.
func (f *Folder) AddImage(ctx context.Context, imageID int64) error {
	return f.conn.Data().Link(ctx, "folders", f.ID, "images", imageID)
}

// RemoveImage removes an image from the folder without deleting it.
func (f *Folder) RemoveImage(ctx context.Context, imageID int64) error {
	return f.conn.Data().Unlink(ctx, "folders", f.ID, "images", imageID)
}

// AddROI files a region of interest under the folder.
func (f *Folder) AddROI(ctx context.Context, roiID int64) error {
	return f.conn.Data().Link(ctx, "folders", f.ID, "rois", roiID)
}

// Save pushes changed folder fields to the server.
func (f *Folder) Save(ctx context.Context) error {
	return f.conn.Data().UpdateFolder(ctx, &f.Folder)
}

// Delete removes the folder from the server. Filed images survive.
func (f *Folder) Delete(ctx context.Context) error {
	return f.conn.Data().Delete(ctx, "folders", f.ID)
}
