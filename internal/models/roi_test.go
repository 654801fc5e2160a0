package models

import "testing"

func TestShapeColors(t *testing.T) {
	t.Run("parses stroke color", func(t *testing.T) {
		shape := Shape{Type: ShapeRectangle, StrokeColor: "#ff0000"}

		c, err := shape.StrokeRGB()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if c.R != 1.0 || c.G != 0 || c.B != 0 {
			t.Errorf("expected pure red, got %v", c)
		}
	})

	t.Run("drops alpha byte", func(t *testing.T) {
		shape := Shape{Type: ShapeEllipse, FillColor: "#00ff00ff"}

		c, err := shape.FillRGB()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if c.G != 1.0 {
			t.Errorf("expected pure green, got %v", c)
		}
	})

	t.Run("empty color", func(t *testing.T) {
		if _, err := (Shape{}).StrokeRGB(); err == nil {
			t.Error("expected error for unset color")
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		shape := Shape{StrokeColor: "red"}
		if _, err := shape.StrokeRGB(); err == nil {
			t.Error("expected error for non-hex color")
		}
	})
}

func TestAnnotationConversions(t *testing.T) {
	t.Run("tag", func(t *testing.T) {
		ann := Annotation{ID: 7, Kind: AnnotationTag, Value: "controls", Description: "control wells", OwnerID: 3}

		tag := ann.Tag()
		if tag.ID != 7 || tag.Value != "controls" || tag.Description != "control wells" || tag.OwnerID != 3 {
			t.Errorf("unexpected tag conversion: %+v", tag)
		}
	})

	t.Run("map", func(t *testing.T) {
		pairs := []KeyValuePair{{Key: "stain", Value: "DAPI"}}
		ann := Annotation{ID: 9, Kind: AnnotationMap, Namespace: "acq", Pairs: pairs}

		m := ann.Map()
		if m.ID != 9 || m.Namespace != "acq" || len(m.Pairs) != 1 || m.Pairs[0].Key != "stain" {
			t.Errorf("unexpected map conversion: %+v", m)
		}
	})
}

func TestCacheValidation(t *testing.T) {
	t.Run("valid image", func(t *testing.T) {
		img := NewCachedImage(1, 10, Image{ID: 42, Name: "plate1_A01.tiff"})
		if err := img.Validate(); err != nil {
			t.Errorf("expected valid cache entry, got %v", err)
		}
	})

	t.Run("missing remote ID", func(t *testing.T) {
		img := NewCachedImage(1, 10, Image{Name: "x.tiff"})
		if err := img.Validate(); err == nil {
			t.Error("expected error for missing remote ID")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		img := NewCachedImage(1, 10, Image{ID: 42})
		if err := img.Validate(); err == nil {
			t.Error("expected error for missing name")
		}
	})

	t.Run("valid tag", func(t *testing.T) {
		tag := NewCachedTag(1, TagAnnotation{ID: 5, Value: "controls"})
		if err := tag.Validate(); err != nil {
			t.Errorf("expected valid cache entry, got %v", err)
		}
	})

	t.Run("missing tag value", func(t *testing.T) {
		tag := NewCachedTag(1, TagAnnotation{ID: 5})
		if err := tag.Validate(); err == nil {
			t.Error("expected error for missing value")
		}
	})
}
