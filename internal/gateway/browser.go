package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lmicro/gomero/internal/models"
)

// defaultPageSize is the page size used when walking paginated listings.
const defaultPageSize = 200

// Browser is the read-only query facility of the gateway.
type Browser struct {
	gw *Gateway
}

// listPaged walks a paginated collection endpoint until exhaustion.
func listPaged[T any](ctx context.Context, gw *Gateway, endpoint string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}

	var all []T
	offset := 0

	for {
		query.Set("offset", strconv.Itoa(offset))
		query.Set("limit", strconv.Itoa(defaultPageSize))

		var resp struct {
			Data []T `json:"data"`
			Meta struct {
				TotalCount int `json:"totalCount"`
			} `json:"meta"`
		}

		if err := gw.doRequest(ctx, http.MethodGet, endpoint, query, nil, &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Data...)
		offset += len(resp.Data)

		if len(resp.Data) == 0 || offset >= resp.Meta.TotalCount {
			break
		}
	}

	return all, nil
}

// getOne fetches a single object endpoint.
func getOne[T any](ctx context.Context, gw *Gateway, endpoint string) (*T, error) {
	var resp struct {
		Data T `json:"data"`
	}
	if err := gw.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Projects lists all projects visible to the session.
func (b *Browser) Projects(ctx context.Context) ([]models.Project, error) {
	return listPaged[models.Project](ctx, b.gw, "/m/projects/", nil)
}

// Project fetches a single project by ID.
func (b *Browser) Project(ctx context.Context, id int64) (*models.Project, error) {
	return getOne[models.Project](ctx, b.gw, fmt.Sprintf("/m/projects/%d/", id))
}

// ProjectDatasets lists the datasets linked to a project.
func (b *Browser) ProjectDatasets(ctx context.Context, projectID int64) ([]models.Dataset, error) {
	return listPaged[models.Dataset](ctx, b.gw, fmt.Sprintf("/m/projects/%d/datasets/", projectID), nil)
}

// Datasets lists all datasets visible to the session.
func (b *Browser) Datasets(ctx context.Context) ([]models.Dataset, error) {
	return listPaged[models.Dataset](ctx, b.gw, "/m/datasets/", nil)
}

// Dataset fetches a single dataset by ID.
func (b *Browser) Dataset(ctx context.Context, id int64) (*models.Dataset, error) {
	return getOne[models.Dataset](ctx, b.gw, fmt.Sprintf("/m/datasets/%d/", id))
}

// DatasetsNamed lists the datasets with the given name.
func (b *Browser) DatasetsNamed(ctx context.Context, name string) ([]models.Dataset, error) {
	query := url.Values{"name": {name}}
	return listPaged[models.Dataset](ctx, b.gw, "/m/datasets/", query)
}

// DatasetImages lists the images linked to a dataset.
func (b *Browser) DatasetImages(ctx context.Context, datasetID int64) ([]models.Image, error) {
	return listPaged[models.Image](ctx, b.gw, fmt.Sprintf("/m/datasets/%d/images/", datasetID), nil)
}

// Image fetches a single image by ID.
func (b *Browser) Image(ctx context.Context, id int64) (*models.Image, error) {
	return getOne[models.Image](ctx, b.gw, fmt.Sprintf("/m/images/%d/", id))
}

// ImagesNamed lists the images in a dataset with an exact name match.
func (b *Browser) ImagesNamed(ctx context.Context, datasetID int64, name string) ([]models.Image, error) {
	query := url.Values{
		"dataset": {strconv.FormatInt(datasetID, 10)},
		"name":    {name},
	}
	return listPaged[models.Image](ctx, b.gw, "/m/images/", query)
}

// ImagesTagged lists all images carrying the given tag annotation.
func (b *Browser) ImagesTagged(ctx context.Context, tagID int64) ([]models.Image, error) {
	query := url.Values{"tag": {strconv.FormatInt(tagID, 10)}}
	return listPaged[models.Image](ctx, b.gw, "/m/images/", query)
}

// ImagesWithPair lists all images annotated with the given key/value pair.
func (b *Browser) ImagesWithPair(ctx context.Context, key, value string) ([]models.Image, error) {
	query := url.Values{"key": {key}, "value": {value}}
	return listPaged[models.Image](ctx, b.gw, "/m/images/", query)
}

// Screens lists all screens visible to the session.
func (b *Browser) Screens(ctx context.Context) ([]models.Screen, error) {
	return listPaged[models.Screen](ctx, b.gw, "/m/screens/", nil)
}

// Screen fetches a single screen by ID.
func (b *Browser) Screen(ctx context.Context, id int64) (*models.Screen, error) {
	return getOne[models.Screen](ctx, b.gw, fmt.Sprintf("/m/screens/%d/", id))
}

// ScreenPlates lists the plates linked to a screen.
func (b *Browser) ScreenPlates(ctx context.Context, screenID int64) ([]models.Plate, error) {
	return listPaged[models.Plate](ctx, b.gw, fmt.Sprintf("/m/screens/%d/plates/", screenID), nil)
}

// Plate fetches a single plate by ID.
func (b *Browser) Plate(ctx context.Context, id int64) (*models.Plate, error) {
	return getOne[models.Plate](ctx, b.gw, fmt.Sprintf("/m/plates/%d/", id))
}

// PlateWells lists the wells of a plate, including their well samples.
func (b *Browser) PlateWells(ctx context.Context, plateID int64) ([]models.Well, error) {
	return listPaged[models.Well](ctx, b.gw, fmt.Sprintf("/m/plates/%d/wells/", plateID), nil)
}

// Well fetches a single well by ID, including its well samples.
func (b *Browser) Well(ctx context.Context, id int64) (*models.Well, error) {
	return getOne[models.Well](ctx, b.gw, fmt.Sprintf("/m/wells/%d/", id))
}

// Folders lists all folders visible to the session.
func (b *Browser) Folders(ctx context.Context) ([]models.Folder, error) {
	return listPaged[models.Folder](ctx, b.gw, "/m/folders/", nil)
}

// Folder fetches a single folder by ID.
func (b *Browser) Folder(ctx context.Context, id int64) (*models.Folder, error) {
	return getOne[models.Folder](ctx, b.gw, fmt.Sprintf("/m/folders/%d/", id))
}

// FolderChildren lists the sub-folders of a folder.
func (b *Browser) FolderChildren(ctx context.Context, folderID int64) ([]models.Folder, error) {
	return listPaged[models.Folder](ctx, b.gw, fmt.Sprintf("/m/folders/%d/folders/", folderID), nil)
}

// FolderImages lists the images linked to a folder.
func (b *Browser) FolderImages(ctx context.Context, folderID int64) ([]models.Image, error) {
	return listPaged[models.Image](ctx, b.gw, fmt.Sprintf("/m/folders/%d/images/", folderID), nil)
}

// FolderROIs lists the ROIs grouped under a folder.
func (b *Browser) FolderROIs(ctx context.Context, folderID int64) ([]models.ROI, error) {
	return listPaged[models.ROI](ctx, b.gw, fmt.Sprintf("/m/folders/%d/rois/", folderID), nil)
}

// ImageFolders lists the folders an image is linked to.
func (b *Browser) ImageFolders(ctx context.Context, imageID int64) ([]models.Folder, error) {
	return listPaged[models.Folder](ctx, b.gw, fmt.Sprintf("/m/images/%d/folders/", imageID), nil)
}

// ImageDatasets lists the datasets an image is linked to.
func (b *Browser) ImageDatasets(ctx context.Context, imageID int64) ([]models.Dataset, error) {
	return listPaged[models.Dataset](ctx, b.gw, fmt.Sprintf("/m/images/%d/datasets/", imageID), nil)
}

// ImageROIs lists the ROIs drawn on an image.
func (b *Browser) ImageROIs(ctx context.Context, imageID int64) ([]models.ROI, error) {
	return listPaged[models.ROI](ctx, b.gw, fmt.Sprintf("/m/images/%d/rois/", imageID), nil)
}

// Tags lists all tag annotations visible to the session.
func (b *Browser) Tags(ctx context.Context) ([]models.TagAnnotation, error) {
	return listPaged[models.TagAnnotation](ctx, b.gw, "/m/tags/", nil)
}

// Tag fetches a single tag annotation by ID.
func (b *Browser) Tag(ctx context.Context, id int64) (*models.TagAnnotation, error) {
	return getOne[models.TagAnnotation](ctx, b.gw, fmt.Sprintf("/m/tags/%d/", id))
}

// TagsNamed lists tag annotations with an exact value match.
func (b *Browser) TagsNamed(ctx context.Context, value string) ([]models.TagAnnotation, error) {
	query := url.Values{"value": {value}}
	return listPaged[models.TagAnnotation](ctx, b.gw, "/m/tags/", query)
}

// Annotations lists the annotations linked to an object. objType is the
// plural collection segment, e.g. "images" or "datasets".
func (b *Browser) Annotations(ctx context.Context, objType string, objID int64) ([]models.Annotation, error) {
	return listPaged[models.Annotation](ctx, b.gw, fmt.Sprintf("/m/%s/%d/annotations/", objType, objID), nil)
}

// ImageParentCount counts the dataset and folder links of an image,
// optionally excluding one dataset. Used for orphan checks before deletion.
func (b *Browser) ImageParentCount(ctx context.Context, imageID, excludeDataset int64) (int, error) {
	query := url.Values{}
	if excludeDataset > 0 {
		query.Set("exclude", strconv.FormatInt(excludeDataset, 10))
	}

	var resp struct {
		Data int `json:"data"`
	}
	if err := b.gw.doRequest(ctx, http.MethodGet, fmt.Sprintf("/m/images/%d/parents/count", imageID), query, nil, &resp); err != nil {
		return 0, err
	}

	return resp.Data, nil
}
