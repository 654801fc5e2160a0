package formatter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lmicro/gomero/internal/models"
)

const (
	sheetCell    = 128 // thumbnail cell edge in pixels
	sheetColumns = 6
)

// ComposeContactSheet lays the dataset's thumbnails out on a grid, in export
// order, and encodes the result as JPEG. Thumbnails are resized to fit the
// cell while preserving aspect ratio.
func ComposeContactSheet(export *models.DatasetExport, thumbnails map[int64][]byte) ([]byte, error) {
	var tiles []image.Image
	for _, record := range export.Images {
		data, ok := thumbnails[record.Image.ID]
		if !ok {
			continue
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding thumbnail of image %d: %w", record.Image.ID, err)
		}
		tiles = append(tiles, imaging.Fit(img, sheetCell, sheetCell, imaging.Lanczos))
	}

	if len(tiles) == 0 {
		return nil, fmt.Errorf("no thumbnails to compose")
	}

	columns := sheetColumns
	if len(tiles) < columns {
		columns = len(tiles)
	}
	rows := (len(tiles) + columns - 1) / columns

	sheet := imaging.New(columns*sheetCell, rows*sheetCell, color.White)
	for i, tile := range tiles {
		x := (i % columns) * sheetCell
		y := (i / columns) * sheetCell
		// center the tile within its cell
		offsetX := x + (sheetCell-tile.Bounds().Dx())/2
		offsetY := y + (sheetCell-tile.Bounds().Dy())/2
		sheet = imaging.Paste(sheet, tile, image.Pt(offsetX, offsetY))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, sheet, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encoding contact sheet: %w", err)
	}
	return buf.Bytes(), nil
}
