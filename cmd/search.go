package main

import (
	"context"
	"fmt"

	"github.com/lmicro/gomero/internal/client"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/urfave/cli/v3"
)

// SearchTag lists images carrying a tag, optionally scoped to a dataset.
func (r *Runner) SearchTag(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	tagID := cmd.Int64("id")
	if tagID == 0 {
		value := cmd.String("value")
		if value == "" {
			return fmt.Errorf("%w: pass --value or --id", shared.ErrMissingArgument)
		}
		tag, err := conn.TagNamed(ctx, value)
		if err != nil {
			return err
		}
		tagID = tag.ID
	}

	var images []*client.Image
	if datasetID := cmd.Int64("dataset"); datasetID != 0 {
		dataset, err := conn.Dataset(ctx, datasetID)
		if err != nil {
			return err
		}
		images, err = dataset.ImagesTagged(ctx, tagID)
		if err != nil {
			return err
		}
	} else {
		images, err = conn.ImagesTagged(ctx, tagID)
		if err != nil {
			return err
		}
	}

	return r.writeImageResults(cmd, fmt.Sprintf("Images tagged %d", tagID), images)
}

// SearchPair lists images carrying a key/value pair, optionally scoped to a dataset.
func (r *Runner) SearchPair(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	key, value := cmd.String("key"), cmd.String("value")

	var images []*client.Image
	if datasetID := cmd.Int64("dataset"); datasetID != 0 {
		dataset, err := conn.Dataset(ctx, datasetID)
		if err != nil {
			return err
		}
		images, err = dataset.ImagesWithPair(ctx, key, value)
		if err != nil {
			return err
		}
	} else {
		images, err = conn.ImagesWithPair(ctx, key, value)
		if err != nil {
			return err
		}
	}

	return r.writeImageResults(cmd, fmt.Sprintf("Images with %s=%s", key, value), images)
}

func (r *Runner) writeImageResults(cmd *cli.Command, title string, images []*client.Image) error {
	r.saveJSON(cmd, "search", images)

	if cmd.Bool("json") {
		return r.writeJSON(images, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	if len(images) == 0 {
		r.writePlain("No matches.\n")
		return nil
	}
	for _, image := range images {
		r.writePlain("%d. %s\n", image.ID, image.Name)
	}
	return nil
}
