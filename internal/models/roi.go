package models

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shape type discriminators used by the gateway.
const (
	ShapeRectangle = "rectangle"
	ShapeEllipse   = "ellipse"
	ShapePoint     = "point"
	ShapeLine      = "line"
	ShapePolygon   = "polygon"
)

// ROI is a region of interest drawn on an image, composed of one or more shapes.
type ROI struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name,omitempty"`
	ImageID int64   `json:"imageId"`
	Shapes  []Shape `json:"shapes"`
}

// Shape is a single geometric primitive of an ROI. The Type field selects
// which geometry fields apply. Z, C and T locate the shape within the image
// dimensions; -1 means the shape spans the whole dimension.
type Shape struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	X2     float64 `json:"x2,omitempty"`     // line end
	Y2     float64 `json:"y2,omitempty"`     // line end
	Points string  `json:"points,omitempty"` // polygon vertices as "x1,y1 x2,y2 ..."
	Z      int     `json:"theZ"`
	C      int     `json:"theC"`
	T      int     `json:"theT"`

	StrokeColor string `json:"strokeColor,omitempty"` // hex, #RRGGBB
	FillColor   string `json:"fillColor,omitempty"`   // hex, #RRGGBB
}

// StrokeRGB parses the shape's stroke color into a [colorful.Color].
func (s Shape) StrokeRGB() (colorful.Color, error) {
	return parseHexColor(s.StrokeColor)
}

// FillRGB parses the shape's fill color into a [colorful.Color].
func (s Shape) FillRGB() (colorful.Color, error) {
	return parseHexColor(s.FillColor)
}

// parseHexColor accepts #RRGGBB and #RRGGBBAA; the alpha byte is dropped
// since the gateway stores opacity separately.
func parseHexColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{}, fmt.Errorf("no color set")
	}
	if len(hex) == 9 {
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}
