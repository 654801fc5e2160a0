// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/lmicro/gomero/internal/models"
)

// MockConnection is a test double for [tasks.Connection]
type MockConnection struct {
	Images    map[string][]models.Image
	Imported  []string
	TagErr    error
	TaggedIDs []int64
}

func (m *MockConnection) ImportImage(ctx context.Context, datasetID int64, path string) (*models.Image, error) {
	m.Imported = append(m.Imported, path)
	return &models.Image{ID: int64(len(m.Imported)), Name: path}, nil
}

func (m *MockConnection) ImagesNamed(ctx context.Context, datasetID int64, name string) ([]models.Image, error) {
	return m.Images[name], nil
}

func (m *MockConnection) AnnotationIDs(ctx context.Context, objType string, objID int64) ([]int64, error) {
	return nil, nil
}

func (m *MockConnection) LinkImageAnnotations(ctx context.Context, imageID int64, annotationIDs []int64) error {
	return nil
}

func (m *MockConnection) ImageROIs(ctx context.Context, imageID int64) ([]models.ROI, error) {
	return nil, nil
}

func (m *MockConnection) SaveImageROIs(ctx context.Context, imageID int64, rois []models.ROI) ([]models.ROI, error) {
	return rois, nil
}

func (m *MockConnection) ImageFolders(ctx context.Context, imageID int64) ([]models.Folder, error) {
	return nil, nil
}

func (m *MockConnection) LinkFolderImage(ctx context.Context, folderID, imageID int64) error {
	return nil
}

func (m *MockConnection) UnlinkFolderImage(ctx context.Context, folderID, imageID int64) error {
	return nil
}

func (m *MockConnection) UpdateImage(ctx context.Context, image *models.Image) error { return nil }

func (m *MockConnection) UnlinkImage(ctx context.Context, datasetID, imageID int64) error {
	return nil
}

func (m *MockConnection) DeleteImage(ctx context.Context, imageID int64) error { return nil }

func (m *MockConnection) ImageParentCount(ctx context.Context, imageID int64, excludeDataset int64) (int, error) {
	return 0, nil
}

func (m *MockConnection) TagImage(ctx context.Context, imageID, tagID int64) error {
	if m.TagErr != nil {
		return m.TagErr
	}
	m.TaggedIDs = append(m.TaggedIDs, imageID)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
