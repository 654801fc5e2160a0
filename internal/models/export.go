package models

// ImageRecord pairs an image with the annotations resolved for export.
type ImageRecord struct {
	Image Image          `json:"image"`
	Tags  []string       `json:"tags,omitempty"`
	Pairs []KeyValuePair `json:"pairs,omitempty"`
}

// DatasetExport is a dataset and its images with resolved annotations,
// ready to be written out.
type DatasetExport struct {
	Dataset Dataset       `json:"dataset"`
	Images  []ImageRecord `json:"images"`
}
