package client

import (
	"context"
	"fmt"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// annotatable carries the annotation operations every wrapper shares. kind is
// the plural remote type used in endpoint paths.
type annotatable struct {
	conn *Client
	kind string
	id   int64
}

// Conn returns the client the wrapper was created from.
func (a *annotatable) Conn() *Client { return a.conn }

// Kind returns the remote object type, e.g. "datasets".
func (a *annotatable) Kind() string { return a.kind }

// Annotations lists every annotation linked to the object.
func (a *annotatable) Annotations(ctx context.Context) ([]models.Annotation, error) {
	return a.conn.Browse().Annotations(ctx, a.kind, a.id)
}

// Tags lists the tag annotations linked to the object.
func (a *annotatable) Tags(ctx context.Context) ([]models.TagAnnotation, error) {
	annotations, err := a.Annotations(ctx)
	if err != nil {
		return nil, err
	}

	var tags []models.TagAnnotation
	for _, ann := range annotations {
		if ann.Kind == models.AnnotationTag {
			tags = append(tags, ann.Tag())
		}
	}
	return tags, nil
}

// AddTag links an existing tag annotation to the object.
func (a *annotatable) AddTag(ctx context.Context, tagID int64) error {
	return a.conn.Data().LinkAnnotations(ctx, a.kind, a.id, tagID)
}

// TagWith creates a tag with the given value and links it to the object.
func (a *annotatable) TagWith(ctx context.Context, value string) (*models.TagAnnotation, error) {
	tag, err := a.conn.Data().CreateTag(ctx, value, "")
	if err != nil {
		return nil, err
	}
	if err := a.AddTag(ctx, tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

// KeyValuePairs flattens the object's map annotations into a single list,
// preserving annotation order.
func (a *annotatable) KeyValuePairs(ctx context.Context) ([]models.KeyValuePair, error) {
	annotations, err := a.Annotations(ctx)
	if err != nil {
		return nil, err
	}

	var pairs []models.KeyValuePair
	for _, ann := range annotations {
		if ann.Kind == models.AnnotationMap {
			pairs = append(pairs, ann.Pairs...)
		}
	}
	return pairs, nil
}

// Value returns the first value stored under key across the object's map
// annotations. Returns ErrKeyNotFound when no annotation carries the key.
func (a *annotatable) Value(ctx context.Context, key string) (string, error) {
	pairs, err := a.KeyValuePairs(ctx)
	if err != nil {
		return "", err
	}

	for _, pair := range pairs {
		if pair.Key == key {
			return pair.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", shared.ErrKeyNotFound, key)
}

// AddKeyValuePairs creates a map annotation with the given pairs and links it
// to the object.
func (a *annotatable) AddKeyValuePairs(ctx context.Context, namespace string, pairs []models.KeyValuePair) (*models.MapAnnotation, error) {
	ann, err := a.conn.Data().CreateMapAnnotation(ctx, namespace, pairs)
	if err != nil {
		return nil, err
	}
	if err := a.conn.Data().LinkAnnotations(ctx, a.kind, a.id, ann.ID); err != nil {
		return nil, err
	}
	return ann, nil
}

// AttachFile uploads a file and links it to the object as a file annotation.
func (a *annotatable) AttachFile(ctx context.Context, path, mimeType string) (*models.FileAnnotation, error) {
	return a.conn.Gateway().AttachFile(ctx, a.kind, a.id, path, mimeType)
}

// Comment creates a comment annotation and links it to the object.
func (a *annotatable) Comment(ctx context.Context, text string) (*models.CommentAnnotation, error) {
	ann, err := a.conn.Data().CreateComment(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := a.conn.Data().LinkAnnotations(ctx, a.kind, a.id, ann.ID); err != nil {
		return nil, err
	}
	return ann, nil
}

// Comments lists the comment annotations linked to the object.
func (a *annotatable) Comments(ctx context.Context) ([]models.CommentAnnotation, error) {
	annotations, err := a.Annotations(ctx)
	if err != nil {
		return nil, err
	}

	var comments []models.CommentAnnotation
	for _, ann := range annotations {
		if ann.Kind == models.AnnotationComment {
			comments = append(comments, models.CommentAnnotation{ID: ann.ID, Value: ann.Value})
		}
	}
	return comments, nil
}

// Files lists the file annotations linked to the object.
func (a *annotatable) Files(ctx context.Context) ([]models.FileAnnotation, error) {
	annotations, err := a.Annotations(ctx)
	if err != nil {
		return nil, err
	}

	var files []models.FileAnnotation
	for _, ann := range annotations {
		if ann.Kind != models.AnnotationFile {
			continue
		}
		fa := models.FileAnnotation{ID: ann.ID, Namespace: ann.Namespace}
		if ann.File != nil {
			fa.File = *ann.File
		}
		files = append(files, fa)
	}
	return files, nil
}

// SaveTable stores tabular data against the object as a table annotation.
func (a *annotatable) SaveTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	return a.conn.Data().SaveTable(ctx, a.kind, a.id, table)
}

// Tables fetches every table annotation linked to the object.
func (a *annotatable) Tables(ctx context.Context) ([]*models.Table, error) {
	annotations, err := a.Annotations(ctx)
	if err != nil {
		return nil, err
	}

	var tables []*models.Table
	for _, ann := range annotations {
		if ann.Kind != models.AnnotationTable {
			continue
		}
		table, err := a.conn.Gateway().Table(ctx, ann.ID)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// UnlinkAnnotation removes the link between the object and an annotation
// without deleting the annotation itself.
func (a *annotatable) UnlinkAnnotation(ctx context.Context, annotationID int64) error {
	return a.conn.Data().UnlinkAnnotations(ctx, a.kind, a.id, annotationID)
}
