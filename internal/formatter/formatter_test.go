package formatter

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/lmicro/gomero/internal/models"
)

func sampleExport() *models.DatasetExport {
	return &models.DatasetExport{
		Dataset: models.Dataset{ID: 7, Name: "controls", Description: "week 3 plates"},
		Images: []models.ImageRecord{
			{
				Image: models.Image{ID: 100, Name: "a.tiff", SizeX: 1024, SizeY: 1024, SizeZ: 12, SizeC: 3, SizeT: 1},
				Tags:  []string{"validated", "DAPI"},
				Pairs: []models.KeyValuePair{{Key: "stain", Value: "DAPI"}, {Key: "objective", Value: "40x"}},
			},
			{
				Image: models.Image{ID: 101, Name: "b.tiff", SizeX: 512, SizeY: 512},
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("includes headers and all rows", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if !strings.HasPrefix(lines[0], "ID,Name,SizeX") {
			t.Errorf("unexpected header line %q", lines[0])
		}
		if !strings.Contains(lines[1], "validated;DAPI") {
			t.Errorf("expected joined tags in row, got %q", lines[1])
		}
		if !strings.Contains(lines[1], "stain=DAPI;objective=40x") {
			t.Errorf("expected joined pairs in row, got %q", lines[1])
		}
	})

	t.Run("empty export", func(t *testing.T) {
		data, err := ExportToCSV(&models.DatasetExport{Dataset: models.Dataset{ID: 1, Name: "empty"}})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected headers only, got %d lines", len(lines))
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("renders dataset and annotations", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		md := string(data)
		if !strings.Contains(md, "# controls") {
			t.Errorf("expected dataset heading, got %q", md)
		}
		if !strings.Contains(md, "**Description**: week 3 plates") {
			t.Errorf("expected description, got %q", md)
		}
		if !strings.Contains(md, "a.tiff (1024x1024) [validated, DAPI]") {
			t.Errorf("expected image line with tags, got %q", md)
		}
		if !strings.Contains(md, "- stain: DAPI") {
			t.Errorf("expected key/value line, got %q", md)
		}
	})

	t.Run("embeds contact sheet when given", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "contact_sheet.jpg")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "![Contact sheet](contact_sheet.jpg)") {
			t.Errorf("expected contact sheet embed, got %q", string(data))
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Dataset: controls") {
		t.Errorf("expected dataset line, got %q", text)
	}
	if !strings.Contains(text, "1. a.tiff") || !strings.Contains(text, "2. b.tiff") {
		t.Errorf("expected numbered image lines, got %q", text)
	}
}

func TestWriteCSVExport(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "controls")

	result, err := WriteCSVExport(sampleExport(), base)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := os.Stat(result.ImagesFile); err != nil {
		t.Errorf("expected images file, got %v", err)
	}

	metadata, err := os.ReadFile(result.MetadataFile)
	if err != nil {
		t.Fatalf("expected metadata file, got %v", err)
	}
	if !strings.Contains(string(metadata), `"name": "controls"`) {
		t.Errorf("unexpected metadata %q", string(metadata))
	}
}

func encodeJPEG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.JPEG); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestComposeContactSheet(t *testing.T) {
	t.Run("composes a grid from thumbnails", func(t *testing.T) {
		export := sampleExport()
		thumbnails := map[int64][]byte{
			100: encodeJPEG(t, 256, 256, color.NRGBA{R: 200, A: 255}),
			101: encodeJPEG(t, 64, 128, color.NRGBA{G: 200, A: 255}),
		}

		data, err := ComposeContactSheet(export, thumbnails)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sheet, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding sheet: %v", err)
		}
		bounds := sheet.Bounds()
		if bounds.Dx() != 2*sheetCell || bounds.Dy() != sheetCell {
			t.Errorf("expected 2x1 grid, got %dx%d", bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("skips images without thumbnails", func(t *testing.T) {
		export := sampleExport()
		thumbnails := map[int64][]byte{
			101: encodeJPEG(t, 64, 64, color.NRGBA{B: 200, A: 255}),
		}

		data, err := ComposeContactSheet(export, thumbnails)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sheet, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding sheet: %v", err)
		}
		if sheet.Bounds().Dx() != sheetCell {
			t.Errorf("expected single cell, got width %d", sheet.Bounds().Dx())
		}
	})

	t.Run("no thumbnails at all", func(t *testing.T) {
		if _, err := ComposeContactSheet(sampleExport(), nil); err == nil {
			t.Error("expected an error for empty input")
		}
	})
}

func TestWriteMarkdownExport(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "export")

	thumbnails := map[int64][]byte{
		100: encodeJPEG(t, 64, 64, color.NRGBA{R: 200, A: 255}),
	}

	result, err := WriteMarkdownExport(sampleExport(), outDir, thumbnails)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.ContactSheet == "" {
		t.Error("expected a contact sheet path")
	}

	md, err := os.ReadFile(filepath.Join(outDir, "README.md"))
	if err != nil {
		t.Fatalf("expected README.md, got %v", err)
	}
	if !strings.Contains(string(md), "![Contact sheet](contact_sheet.jpg)") {
		t.Errorf("expected contact sheet embed in README, got %q", string(md))
	}
}
