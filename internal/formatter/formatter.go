// package formatter provides functions to export dataset listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// ExportToCSV converts a DatasetExport to CSV format with columns: ID, Name, SizeX, SizeY, SizeZ, SizeC, SizeT, Tags, KeyValues
func ExportToCSV(export *models.DatasetExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "SizeX", "SizeY", "SizeZ", "SizeC", "SizeT", "Tags", "KeyValues"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range export.Images {
		img := record.Image
		row := []string{
			strconv.FormatInt(img.ID, 10),
			img.Name,
			strconv.Itoa(img.SizeX),
			strconv.Itoa(img.SizeY),
			strconv.Itoa(img.SizeZ),
			strconv.Itoa(img.SizeC),
			strconv.Itoa(img.SizeT),
			strings.Join(record.Tags, ";"),
			formatPairs(record.Pairs),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a DatasetExport to Markdown format with an optional contact sheet image
func ExportToMarkdown(export *models.DatasetExport, sheetFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Dataset.Name))

	if sheetFilename != "" {
		buf.WriteString(fmt.Sprintf("![Contact sheet](%s)\n\n", sheetFilename))
	}

	if export.Dataset.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", export.Dataset.Description))
	}

	buf.WriteString(fmt.Sprintf("**Images**: %d\n\n", len(export.Images)))

	buf.WriteString("## Images\n\n")
	for i, record := range export.Images {
		img := record.Image
		tagPart := ""
		if len(record.Tags) > 0 {
			tagPart = fmt.Sprintf(" [%s]", strings.Join(record.Tags, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. %s (%dx%d)%s\n", i+1, img.Name, img.SizeX, img.SizeY, tagPart))
		for _, pair := range record.Pairs {
			buf.WriteString(fmt.Sprintf("   - %s: %s\n", pair.Key, pair.Value))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a DatasetExport to plain text format
func ExportToText(export *models.DatasetExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dataset: %s\n", export.Dataset.Name))
	if export.Dataset.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", export.Dataset.Description))
	}
	buf.WriteString(fmt.Sprintf("Images: %d\n\n", len(export.Images)))

	for i, record := range export.Images {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, record.Image.Name))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of dataset metadata (without images)
func ToMetadataJSON(dataset models.Dataset) ([]byte, error) {
	return shared.MarshalJSON(dataset, true)
}

func formatPairs(pairs []models.KeyValuePair) string {
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = fmt.Sprintf("%s=%s", pair.Key, pair.Value)
	}
	return strings.Join(parts, ";")
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ImagesFile   string
	MetadataFile string
}

// WriteCSVExport exports a dataset to CSV format with accompanying metadata JSON file.
//
// Defaults to the dataset ID as the base filename & creates {base}_images.csv and {base}_metadata.json
func WriteCSVExport(export *models.DatasetExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = strconv.FormatInt(export.Dataset.ID, 10)
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	imagesFile := baseFilepath + "_images.csv"
	if err := os.WriteFile(imagesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ImagesFile:   imagesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory    string
	Files        []string
	ContactSheet string
}

// WriteMarkdownExport exports a dataset to Markdown format in a dedicated directory.
//
// Directory name defaults to the dataset ID. thumbnails maps image IDs to
// rendered JPEG previews; when non-empty a contact sheet is composed and
// embedded. Creates a directory structure: {dir}/README.md and optionally
// {dir}/contact_sheet.jpg
func WriteMarkdownExport(export *models.DatasetExport, outputDir string, thumbnails map[int64][]byte) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = strconv.FormatInt(export.Dataset.ID, 10)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var sheetFilename string
	if len(thumbnails) > 0 {
		sheetData, err := ComposeContactSheet(export, thumbnails)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to compose contact sheet: %v\n", err)
		} else {
			sheetFilename = "contact_sheet.jpg"
			sheetPath := filepath.Join(outputDir, sheetFilename)
			if err := os.WriteFile(sheetPath, sheetData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save contact sheet: %v\n", err)
				sheetFilename = ""
			} else {
				result.ContactSheet = sheetPath
				result.Files = append(result.Files, sheetPath)
			}
		}
	}

	mdData, err := ExportToMarkdown(export, sheetFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a dataset to plain text format.
//
// Defaults to {dataset.ID}_images.txt as the filename.
func WriteTextExport(export *models.DatasetExport, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%d_images.txt", export.Dataset.ID)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
