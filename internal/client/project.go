package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Project wraps a remote project with navigation and annotation operations.
type Project struct {
	models.Project
	annotatable
}

// Datasets lists the datasets linked to the project, sorted by ID.
func (p *Project) Datasets(ctx context.Context) ([]*Dataset, error) {
	datasets, err := p.conn.Browse().ProjectDatasets(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	datasets = distinctByID(datasets, func(d models.Dataset) int64 { return d.ID })

	wrapped := make([]*Dataset, len(datasets))
	for i, d := range datasets {
		wrapped[i] = p.conn.wrapDataset(d)
	}
	return wrapped, nil
}

// NewDataset creates a dataset and links it to the project.
func (p *Project) NewDataset(ctx context.Context, name, description string) (*Dataset, error) {
	dataset, err := p.conn.Data().CreateDataset(ctx, p.ID, name, description)
	if err != nil {
		return nil, err
	}
	return p.conn.wrapDataset(*dataset), nil
}

// AddDataset links an existing dataset to the project.
func (p *Project) AddDataset(ctx context.Context, datasetID int64) error {
	return p.conn.Data().Link(ctx, "projects", p.ID, "datasets", datasetID)
}

// RemoveDataset unlinks a dataset from the project without deleting it.
func (p *Project) RemoveDataset(ctx context.Context, datasetID int64) error {
	return p.conn.Data().Unlink(ctx, "projects", p.ID, "datasets", datasetID)
}

// Save pushes changed project fields to the server.
func (p *Project) Save(ctx context.Context) error {
	return p.conn.Data().UpdateProject(ctx, &p.Project)
}

// Delete removes the project from the server. Linked datasets survive.
func (p *Project) Delete(ctx context.Context) error {
	return p.conn.Data().Delete(ctx, "projects", p.ID)
}
