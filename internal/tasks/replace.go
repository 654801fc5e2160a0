package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// ReplacePolicy controls what happens to the images a new import replaces.
type ReplacePolicy int

const (
	// PolicyUnlink removes replaced images from the dataset but keeps them
	// on the server.
	PolicyUnlink ReplacePolicy = iota
	// PolicyDelete removes replaced images from the server entirely.
	PolicyDelete
	// PolicyDeleteOrphaned deletes a replaced image only when the dataset
	// was its last container; otherwise it is unlinked.
	PolicyDeleteOrphaned
)

func (p ReplacePolicy) String() string {
	switch p {
	case PolicyUnlink:
		return "unlink"
	case PolicyDelete:
		return "delete"
	case PolicyDeleteOrphaned:
		return "delete-orphaned"
	default:
		return fmt.Sprintf("ReplacePolicy(%d)", int(p))
	}
}

// ParseReplacePolicy maps a policy name to its value.
func ParseReplacePolicy(name string) (ReplacePolicy, error) {
	switch strings.ToLower(name) {
	case "unlink":
		return PolicyUnlink, nil
	case "delete":
		return PolicyDelete, nil
	case "delete-orphaned", "delete_orphaned":
		return PolicyDeleteOrphaned, nil
	default:
		return 0, fmt.Errorf("%w: unknown replace policy %q", shared.ErrInvalidArgument, name)
	}
}

// ReplaceResult summarizes an import-and-replace run.
type ReplaceResult struct {
	Image    *models.Image // the newly imported image
	Replaced []int64       // IDs of the images the import superseded
	Deleted  []int64       // replaced images removed from the server
	Unlinked []int64       // replaced images removed from the dataset only
}

// ImportReplace imports a file into a dataset and reconciles any images of
// the same name already present. Annotation links and ROIs are copied onto
// the new image, folder placements are moved, and descriptions are carried
// over. The replaced images are then unlinked or deleted per policy.
func (e *ImportEngine) ImportReplace(ctx context.Context, datasetID int64, path string, policy ReplacePolicy) (*ReplaceResult, error) {
	name := filepath.Base(path)

	existing, err := e.conn.ImagesNamed(ctx, datasetID, name)
	if err != nil {
		return nil, fmt.Errorf("listing images named %q: %w", name, err)
	}

	e.sendProgress(ProgressUpdate{Phase: PhaseImport, Message: name})
	e.logger.Info("importing image", "dataset", datasetID, "file", name, "replacing", len(existing))

	image, err := e.conn.ImportImage(ctx, datasetID, path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}

	result := &ReplaceResult{Image: image}

	for _, old := range existing {
		result.Replaced = append(result.Replaced, old.ID)

		if err := e.carryOver(ctx, &old, image); err != nil {
			return result, err
		}
	}

	if err := e.mergeDescription(ctx, existing, image); err != nil {
		return result, err
	}

	for _, old := range existing {
		e.sendProgress(ProgressUpdate{Phase: PhaseReconcile, ImageID: old.ID})
		if err := e.reconcile(ctx, datasetID, old.ID, policy, result); err != nil {
			return result, err
		}
	}

	e.sendProgress(ProgressUpdate{Phase: PhaseDone, ImageID: image.ID, Completed: true})
	return result, nil
}

// carryOver copies annotations and ROIs from old onto new, and moves
// folder placements.
func (e *ImportEngine) carryOver(ctx context.Context, old, image *models.Image) error {
	e.sendProgress(ProgressUpdate{Phase: PhaseAnnotations, ImageID: old.ID})

	annotationIDs, err := e.conn.AnnotationIDs(ctx, "images", old.ID)
	if err != nil {
		return fmt.Errorf("listing annotations of image %d: %w", old.ID, err)
	}
	if err := e.conn.LinkImageAnnotations(ctx, image.ID, annotationIDs); err != nil {
		return fmt.Errorf("linking annotations to image %d: %w", image.ID, err)
	}

	e.sendProgress(ProgressUpdate{Phase: PhaseROIs, ImageID: old.ID})

	rois, err := e.conn.ImageROIs(ctx, old.ID)
	if err != nil {
		return fmt.Errorf("listing ROIs of image %d: %w", old.ID, err)
	}
	if len(rois) > 0 {
		for i := range rois {
			rois[i].ID = 0
			rois[i].ImageID = image.ID
		}
		if _, err := e.conn.SaveImageROIs(ctx, image.ID, rois); err != nil {
			return fmt.Errorf("saving ROIs onto image %d: %w", image.ID, err)
		}
	}

	e.sendProgress(ProgressUpdate{Phase: PhaseFolders, ImageID: old.ID})

	folders, err := e.conn.ImageFolders(ctx, old.ID)
	if err != nil {
		return fmt.Errorf("listing folders of image %d: %w", old.ID, err)
	}
	for _, folder := range folders {
		if err := e.conn.LinkFolderImage(ctx, folder.ID, image.ID); err != nil {
			return fmt.Errorf("filing image %d under folder %d: %w", image.ID, folder.ID, err)
		}
		if err := e.conn.UnlinkFolderImage(ctx, folder.ID, old.ID); err != nil {
			return fmt.Errorf("removing image %d from folder %d: %w", old.ID, folder.ID, err)
		}
	}

	return nil
}

// mergeDescription folds the replaced images' descriptions into the new
// image, in the order the server listed them, with the import's own
// description last.
func (e *ImportEngine) mergeDescription(ctx context.Context, existing []models.Image, image *models.Image) error {
	parts := make([]string, 0, len(existing)+1)
	for _, old := range existing {
		parts = append(parts, old.Description)
	}
	parts = append(parts, image.Description)

	merged := mergeDescriptions(parts...)
	if merged == image.Description {
		return nil
	}

	e.sendProgress(ProgressUpdate{Phase: PhaseDescription, ImageID: image.ID})
	image.Description = merged
	if err := e.conn.UpdateImage(ctx, image); err != nil {
		return fmt.Errorf("updating description of image %d: %w", image.ID, err)
	}
	return nil
}

// reconcile applies the replace policy to one superseded image.
func (e *ImportEngine) reconcile(ctx context.Context, datasetID, imageID int64, policy ReplacePolicy, result *ReplaceResult) error {
	switch policy {
	case PolicyUnlink:
		if err := e.conn.UnlinkImage(ctx, datasetID, imageID); err != nil {
			return fmt.Errorf("unlinking image %d: %w", imageID, err)
		}
		result.Unlinked = append(result.Unlinked, imageID)

	case PolicyDelete:
		if err := e.conn.DeleteImage(ctx, imageID); err != nil {
			return fmt.Errorf("deleting image %d: %w", imageID, err)
		}
		result.Deleted = append(result.Deleted, imageID)

	case PolicyDeleteOrphaned:
		parents, err := e.conn.ImageParentCount(ctx, imageID, datasetID)
		if err != nil {
			return fmt.Errorf("counting parents of image %d: %w", imageID, err)
		}
		if parents == 0 {
			if err := e.conn.DeleteImage(ctx, imageID); err != nil {
				return fmt.Errorf("deleting orphaned image %d: %w", imageID, err)
			}
			result.Deleted = append(result.Deleted, imageID)
			return nil
		}
		if err := e.conn.UnlinkImage(ctx, datasetID, imageID); err != nil {
			return fmt.Errorf("unlinking image %d: %w", imageID, err)
		}
		result.Unlinked = append(result.Unlinked, imageID)

	default:
		return fmt.Errorf("%w: replace policy %d", shared.ErrInvalidArgument, policy)
	}

	return nil
}

// mergeDescriptions joins descriptions in the order given, skipping blank
// parts.
func mergeDescriptions(descriptions ...string) string {
	var parts []string
	for _, s := range descriptions {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
