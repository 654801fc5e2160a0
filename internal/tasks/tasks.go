package tasks

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// Connection is the server surface tasks need. *client.Client satisfies it.
type Connection interface {
	ImportImage(ctx context.Context, datasetID int64, path string) (*models.Image, error)
	ImagesNamed(ctx context.Context, datasetID int64, name string) ([]models.Image, error)
	AnnotationIDs(ctx context.Context, objType string, objID int64) ([]int64, error)
	LinkImageAnnotations(ctx context.Context, imageID int64, annotationIDs []int64) error
	ImageROIs(ctx context.Context, imageID int64) ([]models.ROI, error)
	SaveImageROIs(ctx context.Context, imageID int64, rois []models.ROI) ([]models.ROI, error)
	ImageFolders(ctx context.Context, imageID int64) ([]models.Folder, error)
	LinkFolderImage(ctx context.Context, folderID, imageID int64) error
	UnlinkFolderImage(ctx context.Context, folderID, imageID int64) error
	UpdateImage(ctx context.Context, image *models.Image) error
	UnlinkImage(ctx context.Context, datasetID, imageID int64) error
	DeleteImage(ctx context.Context, imageID int64) error
	ImageParentCount(ctx context.Context, imageID int64, excludeDataset int64) (int, error)
	TagImage(ctx context.Context, imageID, tagID int64) error
}

// ImportEngine runs import and annotation workflows over a connection.
type ImportEngine struct {
	conn     Connection
	logger   *log.Logger
	progress chan<- ProgressUpdate
}

// NewImportEngine creates an engine. progress may be nil when no consumer
// wants updates.
func NewImportEngine(conn Connection, logger *log.Logger, progress chan<- ProgressUpdate) *ImportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ImportEngine{conn: conn, logger: logger, progress: progress}
}

// sendProgress emits an update without blocking. Updates are dropped when the
// consumer falls behind.
func (e *ImportEngine) sendProgress(update ProgressUpdate) {
	if e.progress == nil {
		return
	}
	select {
	case e.progress <- update:
	default:
	}
}
