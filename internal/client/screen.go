package client

import (
	"context"

	"github.com/lmicro/gomero/internal/models"
)

// Screen wraps a remote screen, the top of the screening hierarchy.
type Screen struct {
	models.Screen
	annotatable
}

// Plates lists the plates linked to the screen, sorted by ID.
func (s *Screen) Plates(ctx context.Context) ([]*Plate, error) {
	plates, err := s.conn.Browse().ScreenPlates(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	plates = distinctByID(plates, func(p models.Plate) int64 { return p.ID })

	wrapped := make([]*Plate, len(plates))
	for i, p := range plates {
		wrapped[i] = s.conn.wrapPlate(p)
	}
	return wrapped, nil
}

// Images lists every image acquired across the screen's plates, flattened
// through wells and their samples, deduplicated and sorted by ID.
func (s *Screen) Images(ctx context.Context) ([]*Image, error) {
	plates, err := s.Plates(ctx)
	if err != nil {
		return nil, err
	}

	var images []models.Image
	for _, plate := range plates {
		plateImages, err := plate.rawImages(ctx)
		if err != nil {
			return nil, err
		}
		images = append(images, plateImages...)
	}
	return s.conn.wrapImages(images), nil
}

// Plate wraps a remote multi-well plate.
type Plate struct {
	models.Plate
	annotatable
}

// Wells lists the plate's wells, sorted by ID.
func (p *Plate) Wells(ctx context.Context) ([]*Well, error) {
	wells, err := p.conn.Browse().PlateWells(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	wells = distinctByID(wells, func(w models.Well) int64 { return w.ID })

	wrapped := make([]*Well, len(wells))
	for i, w := range wells {
		wrapped[i] = p.conn.wrapWell(w)
	}
	return wrapped, nil
}

// Images lists every image acquired on the plate, flattened through well
// samples, deduplicated and sorted by ID.
func (p *Plate) Images(ctx context.Context) ([]*Image, error) {
	images, err := p.rawImages(ctx)
	if err != nil {
		return nil, err
	}
	return p.conn.wrapImages(images), nil
}

func (p *Plate) rawImages(ctx context.Context) ([]models.Image, error) {
	wells, err := p.conn.Browse().PlateWells(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	var images []models.Image
	for _, well := range wells {
		for _, sample := range well.Samples {
			if sample.Image != nil {
				images = append(images, *sample.Image)
			}
		}
	}
	return images, nil
}

// Well wraps a single plate position.
type Well struct {
	models.Well
	annotatable
}

// Images lists the images acquired at this well position.
func (w *Well) Images() []*Image {
	var images []models.Image
	for _, sample := range w.Samples {
		if sample.Image != nil {
			images = append(images, *sample.Image)
		}
	}

	wrapped := make([]*Image, len(images))
	for i, img := range images {
		wrapped[i] = w.conn.wrapImage(img)
	}
	return wrapped
}

// Image returns the image of the given field, or nil when the field has no
// acquisition.
func (w *Well) Image(field int) *Image {
	if field < 0 || field >= len(w.Samples) || w.Samples[field].Image == nil {
		return nil
	}
	return w.conn.wrapImage(*w.Samples[field].Image)
}
