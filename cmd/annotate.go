package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmicro/gomero/internal/client"
	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/lmicro/gomero/internal/tasks"
	"github.com/urfave/cli/v3"
)

// annotated is the annotation surface shared by every wrapper type.
type annotated interface {
	Annotations(ctx context.Context) ([]models.Annotation, error)
	Tags(ctx context.Context) ([]models.TagAnnotation, error)
	AddTag(ctx context.Context, tagID int64) error
	TagWith(ctx context.Context, value string) (*models.TagAnnotation, error)
	KeyValuePairs(ctx context.Context) ([]models.KeyValuePair, error)
	AddKeyValuePairs(ctx context.Context, namespace string, pairs []models.KeyValuePair) (*models.MapAnnotation, error)
	Comment(ctx context.Context, text string) (*models.CommentAnnotation, error)
	Comments(ctx context.Context) ([]models.CommentAnnotation, error)
	AttachFile(ctx context.Context, path, mimeType string) (*models.FileAnnotation, error)
	Files(ctx context.Context) ([]models.FileAnnotation, error)
}

// resolveTarget looks up the object addressed by the type/id flags.
func resolveTarget(ctx context.Context, conn *client.Client, kind string, id int64) (annotated, error) {
	switch strings.ToLower(kind) {
	case "project":
		return conn.Project(ctx, id)
	case "dataset":
		return conn.Dataset(ctx, id)
	case "image":
		return conn.Image(ctx, id)
	case "screen":
		return conn.Screen(ctx, id)
	case "plate":
		return conn.Plate(ctx, id)
	case "folder":
		return conn.Folder(ctx, id)
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", shared.ErrInvalidArgument, kind)
	}
}

// AnnotateTag links an existing tag or creates one from its text.
func (r *Runner) AnnotateTag(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, conn, cmd.String("type"), cmd.Int64("id"))
	if err != nil {
		return err
	}

	if tagID := cmd.Int64("tag"); tagID != 0 {
		if err := target.AddTag(ctx, tagID); err != nil {
			return err
		}
		return r.writePlain("✓ Tagged %s %d with tag %d\n", cmd.String("type"), cmd.Int64("id"), tagID)
	}

	value := cmd.String("value")
	if value == "" {
		return fmt.Errorf("%w: pass --tag or --value", shared.ErrMissingArgument)
	}

	tag, err := target.TagWith(ctx, value)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Tagged %s %d with [%s] (tag %d)\n", cmd.String("type"), cmd.Int64("id"), tag.Value, tag.ID)
}

// AnnotateKV attaches key/value pairs parsed from repeated --pair flags.
func (r *Runner) AnnotateKV(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, conn, cmd.String("type"), cmd.Int64("id"))
	if err != nil {
		return err
	}

	var pairs []models.KeyValuePair
	for _, raw := range cmd.StringSlice("pair") {
		key, value, found := strings.Cut(raw, "=")
		if !found || key == "" {
			return fmt.Errorf("%w: pair %q is not in key=value form", shared.ErrInvalidArgument, raw)
		}
		pairs = append(pairs, models.KeyValuePair{Key: key, Value: value})
	}

	annotation, err := target.AddKeyValuePairs(ctx, cmd.String("namespace"), pairs)
	if err != nil {
		return err
	}

	r.logger.Info("map annotation created", "id", annotation.ID, "pairs", len(pairs))
	return r.writePlain("✓ Attached %d pairs to %s %d\n", len(pairs), cmd.String("type"), cmd.Int64("id"))
}

// AnnotateComment adds a comment annotation.
func (r *Runner) AnnotateComment(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, conn, cmd.String("type"), cmd.Int64("id"))
	if err != nil {
		return err
	}

	comment, err := target.Comment(ctx, cmd.String("text"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Comment %d added\n", comment.ID)
}

// AnnotateAttach uploads a file and links it as an attachment.
func (r *Runner) AnnotateAttach(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: file path required", shared.ErrMissingArgument)
	}

	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, conn, cmd.String("type"), cmd.Int64("id"))
	if err != nil {
		return err
	}

	annotation, err := target.AttachFile(ctx, path, cmd.String("mime"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Attached %s (%d bytes) as annotation %d\n",
		annotation.File.Name, annotation.File.Size, annotation.ID)
}

// AnnotateList prints every annotation on an object.
func (r *Runner) AnnotateList(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	target, err := resolveTarget(ctx, conn, cmd.String("type"), cmd.Int64("id"))
	if err != nil {
		return err
	}

	annotations, err := target.Annotations(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "annotations", annotations)

	if cmd.Bool("json") {
		return r.writeJSON(annotations, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Annotations on %s %d", cmd.String("type"), cmd.Int64("id")))
	for _, annotation := range annotations {
		switch annotation.Kind {
		case models.AnnotationTag:
			r.writePlain("%d. tag [%s]\n", annotation.ID, annotation.Value)
		case models.AnnotationMap:
			r.writePlain("%d. map (%d pairs)\n", annotation.ID, len(annotation.Pairs))
		case models.AnnotationComment:
			r.writePlain("%d. comment: %s\n", annotation.ID, annotation.Value)
		case models.AnnotationFile:
			if annotation.File != nil {
				r.writePlain("%d. file: %s\n", annotation.ID, annotation.File.Name)
			} else {
				r.writePlain("%d. file\n", annotation.ID)
			}
		default:
			r.writePlain("%d. %s\n", annotation.ID, annotation.Kind)
		}
	}
	return nil
}

// AnnotateBulk tags many images concurrently through the import engine.
func (r *Runner) AnnotateBulk(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	imageIDs := cmd.Int64Slice("image")
	if datasetID := cmd.Int64("dataset"); datasetID != 0 {
		dataset, err := conn.Dataset(ctx, datasetID)
		if err != nil {
			return err
		}
		images, err := dataset.Images(ctx)
		if err != nil {
			return err
		}
		for _, image := range images {
			imageIDs = append(imageIDs, image.ID)
		}
	}

	if len(imageIDs) == 0 {
		return fmt.Errorf("%w: pass --image or --dataset", shared.ErrMissingArgument)
	}

	progress := make(chan tasks.ProgressUpdate, 64)
	engine := tasks.NewImportEngine(conn, r.logger, progress)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Completed {
				continue
			}
			if update.Err != nil {
				r.writePlain("✗ image %d: %v\n", update.ImageID, update.Err)
			} else {
				r.writePlain("  [%d/%d] image %d tagged\n", update.Current, update.Total, update.ImageID)
			}
		}
	}()

	err = engine.BulkTag(ctx, imageIDs, cmd.Int64("tag"), cmd.Int("workers"))
	close(progress)
	<-done

	if err != nil {
		return err
	}
	return r.writePlain("✓ Tagged %d images\n", len(imageIDs))
}
