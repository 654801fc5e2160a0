package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// BrowseProjects lists every project visible to the session.
func (r *Runner) BrowseProjects(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	projects, err := conn.Projects(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "projects", projects)

	if cmd.Bool("json") {
		return r.writeJSON(projects, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Projects")
	for _, project := range projects {
		r.writePlain("%d. %s (%d datasets)\n", project.ID, project.Name, project.DatasetCount)
		if project.Description != "" {
			r.writePlain("   %s\n", project.Description)
		}
	}
	return nil
}

// BrowseProject lists the datasets inside a project.
func (r *Runner) BrowseProject(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	project, err := conn.Project(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	datasets, err := project.Datasets(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "datasets", datasets)

	if cmd.Bool("json") {
		return r.writeJSON(datasets, cmd.Bool("pretty"))
	}

	r.writePlainHeader(project.Name)
	for _, dataset := range datasets {
		r.writePlain("%d. %s (%d images)\n", dataset.ID, dataset.Name, dataset.ImageCount)
	}
	return nil
}

// BrowseDataset lists the images inside a dataset.
func (r *Runner) BrowseDataset(ctx context.Context, cmd *cli.Command) error {
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

	r.saveJSON(cmd, "images", images)

	if cmd.Bool("json") {
		return r.writeJSON(images, cmd.Bool("pretty"))
	}

	r.writePlainHeader(dataset.Name)
	for _, image := range images {
		r.writePlain("%d. %s (%dx%d)\n", image.ID, image.Name, image.SizeX, image.SizeY)
	}
	return nil
}

// BrowseImage prints an image's metadata, annotations and region count.
func (r *Runner) BrowseImage(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	image, err := conn.Image(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "image", image)

	if cmd.Bool("json") {
		return r.writeJSON(image, cmd.Bool("pretty"))
	}

	r.writePlainHeader(image.Name)
	r.writePlain("ID: %d\n", image.ID)
	r.writePlain("Dimensions: %dx%d, %d z-sections, %d channels, %d timepoints\n",
		image.SizeX, image.SizeY, image.SizeZ, image.SizeC, image.SizeT)
	if image.Description != "" {
		r.writePlain("Description: %s\n", image.Description)
	}
	if image.AcquiredAt != "" {
		r.writePlain("Acquired: %s\n", image.AcquiredAt)
	}

	if tags, err := image.Tags(ctx); err == nil && len(tags) > 0 {
		r.writePlain("Tags:")
		for _, tag := range tags {
			r.writePlain(" [%s]", tag.Value)
		}
		r.writePlain("\n")
	}

	if pairs, err := image.KeyValuePairs(ctx); err == nil && len(pairs) > 0 {
		r.writePlain("Key/values:\n")
		for _, pair := range pairs {
			r.writePlain("  %s: %s\n", pair.Key, pair.Value)
		}
	}

	if rois, err := image.ROIs(ctx); err == nil {
		r.writePlain("Regions: %d\n", len(rois))
	}

	return nil
}

// BrowseScreens lists every screen visible to the session.
func (r *Runner) BrowseScreens(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	screens, err := conn.Screens(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "screens", screens)

	if cmd.Bool("json") {
		return r.writeJSON(screens, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Screens")
	for _, screen := range screens {
		r.writePlain("%d. %s (%d plates)\n", screen.ID, screen.Name, screen.PlateCount)
	}
	return nil
}

// BrowseScreen lists the plates inside a screen.
func (r *Runner) BrowseScreen(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	screen, err := conn.Screen(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	plates, err := screen.Plates(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "plates", plates)

	if cmd.Bool("json") {
		return r.writeJSON(plates, cmd.Bool("pretty"))
	}

	r.writePlainHeader(screen.Name)
	for _, plate := range plates {
		r.writePlain("%d. %s (%dx%d)\n", plate.ID, plate.Name, plate.Rows, plate.Columns)
	}
	return nil
}

// BrowsePlate lists the wells on a plate and the fields acquired in each.
func (r *Runner) BrowsePlate(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	plate, err := conn.Plate(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	wells, err := plate.Wells(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "wells", wells)

	if cmd.Bool("json") {
		return r.writeJSON(wells, cmd.Bool("pretty"))
	}

	r.writePlainHeader(plate.Name)
	for _, well := range wells {
		images := well.Images()
		r.writePlain("%s%d: %d fields\n", wellRowLabel(well.Row), well.Column+1, len(images))
		for _, image := range images {
			r.writePlain("   %d. %s\n", image.ID, image.Name)
		}
	}
	return nil
}

// BrowseFolders lists top-level folders.
func (r *Runner) BrowseFolders(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	folders, err := conn.Folders(ctx)
	if err != nil {
		return err
	}

	r.saveJSON(cmd, "folders", folders)

	if cmd.Bool("json") {
		return r.writeJSON(folders, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Folders")
	for _, folder := range folders {
		r.writePlain("%d. %s\n", folder.ID, folder.Name)
	}
	return nil
}

// BrowseFolder lists a folder's subfolders, images and region count.
func (r *Runner) BrowseFolder(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	folder, err := conn.Folder(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	children, err := folder.Children(ctx)
	if err != nil {
		return err
	}
	images, err := folder.Images(ctx)
	if err != nil {
		return err
	}
	rois, err := folder.ROIs(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"folder":   folder.Folder,
			"children": children,
			"images":   images,
			"roiCount": len(rois),
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(folder.Name)
	for _, child := range children {
		r.writePlain("+ %d. %s\n", child.ID, child.Name)
	}
	for _, image := range images {
		r.writePlain("  %d. %s\n", image.ID, image.Name)
	}
	r.writePlain("Regions: %d\n", len(rois))
	return nil
}

// wellRowLabel converts a zero-based row index to its plate letter ("A"..).
func wellRowLabel(row int) string {
	label := ""
	for {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
		if row < 0 {
			return label
		}
	}
}
