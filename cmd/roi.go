package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// ROIList prints the regions of interest on an image with their shapes.
func (r *Runner) ROIList(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	image, err := conn.Image(ctx, cmd.Int64("image"))
	if err != nil {
		return err
	}

	rois, err := image.ROIs(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "rois", rois)

	if cmd.Bool("json") {
		return r.writeJSON(rois, cmd.Bool("pretty"))
	}

	r.writePlainHeader(image.Name)
	for _, roi := range rois {
		name := roi.Name
		if name == "" {
			name = "(unnamed)"
		}
		r.writePlain("%d. %s (%d shapes)\n", roi.ID, name, len(roi.Shapes))
		for _, shape := range roi.Shapes {
			if shape.Text != "" {
				r.writePlain("   %s %q z=%d c=%d t=%d\n", shape.Type, shape.Text, shape.Z, shape.C, shape.T)
			} else {
				r.writePlain("   %s z=%d c=%d t=%d\n", shape.Type, shape.Z, shape.C, shape.T)
			}
		}
	}
	return nil
}

// ROIFolder links a region into an organizing folder.
func (r *Runner) ROIFolder(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	folder, err := conn.Folder(ctx, cmd.Int64("into"))
	if err != nil {
		return err
	}

	if err := folder.AddROI(ctx, cmd.Int64("id")); err != nil {
		return err
	}
	return r.writePlain("✓ ROI %d filed into %s\n", cmd.Int64("id"), folder.Name)
}
