package ui

import (
	"github.com/lmicro/gomero/internal/client"
	"github.com/lmicro/gomero/internal/models"
)

type projectsFetchedMsg struct {
	projects []*client.Project
	err      error
}

type datasetsFetchedMsg struct {
	datasets []*client.Dataset
	err      error
}

type imagesFetchedMsg struct {
	images []*client.Image
	err    error
}

// imageDetail carries one image's resolved annotations for the detail view.
type imageDetail struct {
	image *client.Image
	tags  []models.TagAnnotation
	pairs []models.KeyValuePair
	rois  []models.ROI
}

type detailFetchedMsg struct {
	detail *imageDetail
	err    error
}
