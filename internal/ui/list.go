package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/lmicro/gomero/internal/client"
)

var (
	_ list.Item = projectItem{}
	_ list.Item = datasetItem{}
	_ list.Item = imageItem{}
)

// projectItem wraps [client.Project] to implement [list.Item].
type projectItem struct {
	project *client.Project
}

func (i projectItem) FilterValue() string { return i.project.Name }
func (i projectItem) Title() string       { return i.project.Name }
func (i projectItem) Description() string {
	desc := fmt.Sprintf("%d datasets", i.project.DatasetCount)
	if i.project.Project.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.project.Project.Description)
	}
	return desc
}

// datasetItem wraps [client.Dataset] to implement [list.Item].
type datasetItem struct {
	dataset *client.Dataset
}

func (i datasetItem) FilterValue() string { return i.dataset.Name }
func (i datasetItem) Title() string       { return i.dataset.Name }
func (i datasetItem) Description() string {
	desc := fmt.Sprintf("%d images", i.dataset.ImageCount)
	if i.dataset.Dataset.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.dataset.Dataset.Description)
	}
	return desc
}

// imageItem wraps [client.Image] to implement [list.Item].
type imageItem struct {
	image *client.Image
}

func (i imageItem) FilterValue() string { return i.image.Name }
func (i imageItem) Title() string       { return i.image.Name }
func (i imageItem) Description() string {
	img := i.image.Image
	if img.SizeX == 0 {
		return fmt.Sprintf("image #%d", img.ID)
	}
	return fmt.Sprintf("%dx%d • %d z-sections • %d channels", img.SizeX, img.SizeY, img.SizeZ, img.SizeC)
}
