// Remote container hierarchy types returned by the JSON gateway.
//
// Field names follow the gateway's JSON API representation.
package models

// Project is the top-level container in the project hierarchy.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OwnerID      int64  `json:"ownerId"`
	GroupID      int64  `json:"groupId"`
	DatasetCount int    `json:"childCount"`
}

// Dataset groups images inside a project.
type Dataset struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	GroupID     int64  `json:"groupId"`
	ImageCount  int    `json:"childCount"`
}

// Image represents a remote image and its acquisition metadata.
type Image struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	GroupID     int64  `json:"groupId"`
	AcquiredAt  string `json:"acquisitionDate,omitempty"`
	SizeX       int    `json:"sizeX,omitempty"`
	SizeY       int    `json:"sizeY,omitempty"`
	SizeZ       int    `json:"sizeZ,omitempty"`
	SizeC       int    `json:"sizeC,omitempty"`
	SizeT       int    `json:"sizeT,omitempty"`
}

// Screen is the top-level container in the screening hierarchy.
type Screen struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	GroupID     int64  `json:"groupId"`
	PlateCount  int    `json:"childCount"`
}

// Plate represents a multi-well plate belonging to a screen.
type Plate struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	GroupID     int64  `json:"groupId"`
	Rows        int    `json:"rows,omitempty"`
	Columns     int    `json:"columns,omitempty"`
}

// Well is a single plate position holding zero or more field acquisitions.
type Well struct {
	ID      int64        `json:"id"`
	Row     int          `json:"row"`
	Column  int          `json:"column"`
	PlateID int64        `json:"plateId"`
	Samples []WellSample `json:"wellSamples,omitempty"`
}

// WellSample links a well position to an acquired image (one field).
type WellSample struct {
	ID    int64  `json:"id"`
	Image *Image `json:"image,omitempty"`
}

// Folder groups images and ROIs; folders may form a hierarchy.
type Folder struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	GroupID     int64  `json:"groupId"`
	ParentID    int64  `json:"parentFolderId,omitempty"`
}
