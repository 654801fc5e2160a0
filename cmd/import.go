package main

import (
	"context"
	"fmt"

	"github.com/lmicro/gomero/internal/shared"
	"github.com/lmicro/gomero/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ImportRun imports an image into a dataset, carrying annotations, regions
// and folder placement over from any same-named predecessors.
func (r *Runner) ImportRun(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path required", shared.ErrMissingArgument)
	}

	policy, err := tasks.ParseReplacePolicy(cmd.String("policy"))
	if err != nil {
		return err
	}

	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 64)
	engine := tasks.NewImportEngine(conn, r.logger, progress)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch {
			case update.Err != nil:
				r.writePlain("✗ %s: %v\n", update.Phase, update.Err)
			case update.Completed:
				// final summary printed below
			case update.Message != "":
				r.writePlain("  %s: %s\n", update.Phase, update.Message)
			default:
				r.writePlain("  %s\n", update.Phase)
			}
		}
	}()

	result, err := engine.ImportReplace(ctx, cmd.Int64("dataset"), path, policy)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Imported %s as image %d\n", path, result.Image.ID)
	if len(result.Replaced) > 0 {
		r.writePlain("  Replaced: %v\n", result.Replaced)
	}
	if len(result.Deleted) > 0 {
		r.writePlain("  Deleted: %v\n", result.Deleted)
	}
	if len(result.Unlinked) > 0 {
		r.writePlain("  Unlinked: %v\n", result.Unlinked)
	}
	return nil
}
