package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmicro/gomero/internal/formatter"
	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/urfave/cli/v3"
)

const thumbnailSize = 128

// ExportDataset writes a dataset's metadata to local files in the chosen format.
func (r *Runner) ExportDataset(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	dataset, err := conn.Dataset(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	images, err := dataset.Images(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("exporting dataset", "id", dataset.ID, "images", len(images))

	export := &models.DatasetExport{Dataset: dataset.Dataset}
	withThumbnails := cmd.Bool("thumbnails")
	thumbnails := map[int64][]byte{}

	for _, image := range images {
		record := models.ImageRecord{Image: image.Image}

		tags, err := image.Tags(ctx)
		if err != nil {
			return fmt.Errorf("fetching tags for image %d: %w", image.ID, err)
		}
		for _, tag := range tags {
			record.Tags = append(record.Tags, tag.Value)
		}

		if record.Pairs, err = image.KeyValuePairs(ctx); err != nil {
			return fmt.Errorf("fetching key/values for image %d: %w", image.ID, err)
		}

		if withThumbnails {
			if data, err := image.Thumbnail(ctx, thumbnailSize); err != nil {
				r.logger.Warn("thumbnail unavailable", "image", image.ID, "error", err)
			} else {
				thumbnails[image.ID] = data
			}
		}

		export.Images = append(export.Images, record)
	}

	output := cmd.String("output")

	switch strings.ToLower(cmd.String("format")) {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d images\n", len(export.Images))
		r.writePlain("  %s\n", result.ImagesFile)
		r.writePlain("  %s\n", result.MetadataFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(export, output, thumbnails)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d images to %s\n", len(export.Images), result.Directory)
		if result.ContactSheet != "" {
			r.writePlain("  Contact sheet: %s\n", result.ContactSheet)
		}
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d images to %s\n", len(export.Images), path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, cmd.String("format"))
	}

	return nil
}
