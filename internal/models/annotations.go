package models

// Annotation type discriminators used by the gateway.
const (
	AnnotationTag     = "tag"
	AnnotationMap     = "map"
	AnnotationFile    = "file"
	AnnotationComment = "comment"
	AnnotationTable   = "table"
)

// Annotation is the generic representation of any annotation attached to a
// container, image, well or folder. The Kind field selects which of the
// type-specific fields are populated.
type Annotation struct {
	ID          int64          `json:"id"`
	Kind        string         `json:"kind"`
	Namespace   string         `json:"namespace,omitempty"`
	OwnerID     int64          `json:"ownerId"`
	Value       string         `json:"value,omitempty"`       // tag and comment text
	Description string         `json:"description,omitempty"` // tag description
	Pairs       []KeyValuePair `json:"pairs,omitempty"`       // map annotation content
	File        *FileInfo      `json:"file,omitempty"`        // file annotation content
}

// KeyValuePair is a single entry of a map annotation. Keys are not unique
// within or across map annotations.
type KeyValuePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FileInfo describes the original file behind a file annotation.
type FileInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType,omitempty"`
}

// TagAnnotation is a textual tag attached to an object.
type TagAnnotation struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	OwnerID     int64  `json:"ownerId"`
}

// MapAnnotation holds an ordered list of key/value pairs.
type MapAnnotation struct {
	ID        int64          `json:"id"`
	Namespace string         `json:"namespace,omitempty"`
	Pairs     []KeyValuePair `json:"pairs"`
}

// FileAnnotation attaches an uploaded file to an object.
type FileAnnotation struct {
	ID        int64    `json:"id"`
	Namespace string   `json:"namespace,omitempty"`
	File      FileInfo `json:"file"`
}

// CommentAnnotation is free-form text attached to an object.
type CommentAnnotation struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// Table is a tabular annotation with named columns and row data.
type Table struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// Tag converts a generic annotation to a TagAnnotation.
func (a Annotation) Tag() TagAnnotation {
	return TagAnnotation{ID: a.ID, Value: a.Value, Description: a.Description, OwnerID: a.OwnerID}
}

// Map converts a generic annotation to a MapAnnotation.
func (a Annotation) Map() MapAnnotation {
	return MapAnnotation{ID: a.ID, Namespace: a.Namespace, Pairs: a.Pairs}
}
