package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lmicro/gomero/internal/models"
)

// DataManager is the write facility of the gateway: create, update, delete
// and the link/unlink operations backing the container hierarchy.
type DataManager struct {
	gw *Gateway
}

// linkRequest is the wire form of a bulk link or unlink call.
type linkRequest struct {
	ParentType string  `json:"parentType"`
	ParentID   int64   `json:"parentId"`
	ChildType  string  `json:"childType"`
	ChildIDs   []int64 `json:"childIds"`
}

func create[T any](ctx context.Context, gw *Gateway, endpoint string, body any) (*T, error) {
	var resp struct {
		Data T `json:"data"`
	}
	if err := gw.doRequest(ctx, http.MethodPost, endpoint, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func update(ctx context.Context, gw *Gateway, endpoint string, body any) error {
	return gw.doRequest(ctx, http.MethodPut, endpoint, nil, body, nil)
}

// CreateProject creates a new project.
func (d *DataManager) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	body := map[string]string{"name": name, "description": description}
	return create[models.Project](ctx, d.gw, "/m/projects/", body)
}

// CreateDataset creates a new dataset, linked to a project when projectID is positive.
func (d *DataManager) CreateDataset(ctx context.Context, projectID int64, name, description string) (*models.Dataset, error) {
	body := map[string]any{"name": name, "description": description}
	if projectID > 0 {
		body["projectId"] = projectID
	}
	return create[models.Dataset](ctx, d.gw, "/m/datasets/", body)
}

// CreateFolder creates a new folder, nested under a parent when parentID is positive.
func (d *DataManager) CreateFolder(ctx context.Context, parentID int64, name, description string) (*models.Folder, error) {
	body := map[string]any{"name": name, "description": description}
	if parentID > 0 {
		body["parentFolderId"] = parentID
	}
	return create[models.Folder](ctx, d.gw, "/m/folders/", body)
}

// CreateTag creates a new tag annotation.
func (d *DataManager) CreateTag(ctx context.Context, value, description string) (*models.TagAnnotation, error) {
	body := map[string]string{"value": value, "description": description}
	return create[models.TagAnnotation](ctx, d.gw, "/m/tags/", body)
}

// CreateMapAnnotation creates a map annotation holding the given pairs.
func (d *DataManager) CreateMapAnnotation(ctx context.Context, namespace string, pairs []models.KeyValuePair) (*models.MapAnnotation, error) {
	body := map[string]any{"namespace": namespace, "pairs": pairs}
	return create[models.MapAnnotation](ctx, d.gw, "/m/annotations/map/", body)
}

// CreateComment creates a comment annotation.
func (d *DataManager) CreateComment(ctx context.Context, text string) (*models.CommentAnnotation, error) {
	body := map[string]string{"value": text}
	return create[models.CommentAnnotation](ctx, d.gw, "/m/annotations/comment/", body)
}

// UpdateProject persists changes to a project's name and description.
func (d *DataManager) UpdateProject(ctx context.Context, project *models.Project) error {
	return update(ctx, d.gw, fmt.Sprintf("/m/projects/%d/", project.ID), project)
}

// UpdateDataset persists changes to a dataset's name and description.
func (d *DataManager) UpdateDataset(ctx context.Context, dataset *models.Dataset) error {
	return update(ctx, d.gw, fmt.Sprintf("/m/datasets/%d/", dataset.ID), dataset)
}

// UpdateImage persists changes to an image's name and description.
func (d *DataManager) UpdateImage(ctx context.Context, image *models.Image) error {
	return update(ctx, d.gw, fmt.Sprintf("/m/images/%d/", image.ID), image)
}

// UpdateFolder persists changes to a folder's name and description.
func (d *DataManager) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	return update(ctx, d.gw, fmt.Sprintf("/m/folders/%d/", folder.ID), folder)
}

// Delete removes an object. objType is the plural collection segment,
// e.g. "images". Deletion cascades server-side per gateway rules.
func (d *DataManager) Delete(ctx context.Context, objType string, id int64) error {
	return d.gw.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/m/%s/%d/", objType, id), nil, nil, nil)
}

// Link creates parent/child links between a container and one or more children.
func (d *DataManager) Link(ctx context.Context, parentType string, parentID int64, childType string, childIDs ...int64) error {
	if len(childIDs) == 0 {
		return nil
	}

	body := linkRequest{
		ParentType: parentType,
		ParentID:   parentID,
		ChildType:  childType,
		ChildIDs:   childIDs,
	}
	return d.gw.doRequest(ctx, http.MethodPost, "/m/links/", nil, body, nil)
}

// Unlink removes parent/child links between a container and one or more
// children. The children themselves are not deleted.
func (d *DataManager) Unlink(ctx context.Context, parentType string, parentID int64, childType string, childIDs ...int64) error {
	if len(childIDs) == 0 {
		return nil
	}

	body := linkRequest{
		ParentType: parentType,
		ParentID:   parentID,
		ChildType:  childType,
		ChildIDs:   childIDs,
	}
	return d.gw.doRequest(ctx, http.MethodDelete, "/m/links/", nil, body, nil)
}

// LinkAnnotations attaches existing annotations to an object.
func (d *DataManager) LinkAnnotations(ctx context.Context, objType string, objID int64, annotationIDs ...int64) error {
	return d.Link(ctx, objType, objID, "annotations", annotationIDs...)
}

// UnlinkAnnotations detaches annotations from an object without deleting them.
func (d *DataManager) UnlinkAnnotations(ctx context.Context, objType string, objID int64, annotationIDs ...int64) error {
	return d.Unlink(ctx, objType, objID, "annotations", annotationIDs...)
}

// SaveROIs persists ROIs onto an image and returns the saved copies with
// server-assigned IDs.
func (d *DataManager) SaveROIs(ctx context.Context, imageID int64, rois []models.ROI) ([]models.ROI, error) {
	var resp struct {
		Data []models.ROI `json:"data"`
	}
	endpoint := fmt.Sprintf("/m/images/%d/rois/", imageID)
	if err := d.gw.doRequest(ctx, http.MethodPost, endpoint, nil, rois, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SaveTable persists a tabular annotation onto an object and returns the
// saved table with its server-assigned ID.
func (d *DataManager) SaveTable(ctx context.Context, objType string, objID int64, table *models.Table) (*models.Table, error) {
	endpoint := fmt.Sprintf("/m/%s/%d/tables/", objType, objID)
	return create[models.Table](ctx, d.gw, endpoint, table)
}
