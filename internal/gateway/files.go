package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// ImportImage uploads an image file into a dataset through the gateway's
// import endpoint and returns the newly created image.
func (g *Gateway) ImportImage(ctx context.Context, datasetID int64, path string) (*models.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ServiceError{Op: "import", Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("dataset", strconv.FormatInt(datasetID, 10)); err != nil {
		return nil, &ServiceError{Op: "import", Err: fmt.Errorf("failed to write dataset field: %w", err)}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &ServiceError{Op: "import", Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &ServiceError{Op: "import", Err: fmt.Errorf("failed to copy file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &ServiceError{Op: "import", Err: fmt.Errorf("failed to finalize form: %w", err)}
	}

	var resp struct {
		Data models.Image `json:"data"`
	}
	if err := g.doMultipart(ctx, "/import", writer.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}

	return &resp.Data, nil
}

// AttachFile uploads a file and links it to an object as a file annotation.
func (g *Gateway) AttachFile(ctx context.Context, objType string, objID int64, path, mimeType string) (*models.FileAnnotation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ServiceError{Op: "attach", Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if mimeType != "" {
		if err := writer.WriteField("mimeType", mimeType); err != nil {
			return nil, &ServiceError{Op: "attach", Err: fmt.Errorf("failed to write mime field: %w", err)}
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &ServiceError{Op: "attach", Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &ServiceError{Op: "attach", Err: fmt.Errorf("failed to copy file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &ServiceError{Op: "attach", Err: fmt.Errorf("failed to finalize form: %w", err)}
	}

	endpoint := fmt.Sprintf("/m/%s/%d/files/", objType, objID)

	var resp struct {
		Data models.FileAnnotation `json:"data"`
	}
	if err := g.doMultipart(ctx, endpoint, writer.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}

	return &resp.Data, nil
}

// DownloadFile streams the original file behind a file annotation into w.
func (g *Gateway) DownloadFile(ctx context.Context, annotationID int64, w io.Writer) (int64, error) {
	data, err := g.doRaw(ctx, http.MethodGet, fmt.Sprintf("/m/annotations/%d/file", annotationID), nil)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write file: %w", err)
	}

	return int64(n), nil
}

// Thumbnail fetches the rendered JPEG thumbnail of an image. size is the
// longest edge in pixels; zero uses the server default.
func (g *Gateway) Thumbnail(ctx context.Context, imageID int64, size int) ([]byte, error) {
	query := url.Values{}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	return g.doRaw(ctx, http.MethodGet, fmt.Sprintf("/m/images/%d/thumbnail/", imageID), query)
}

// Table fetches the content of a tabular annotation.
func (g *Gateway) Table(ctx context.Context, annotationID int64) (*models.Table, error) {
	return getOne[models.Table](ctx, g, fmt.Sprintf("/m/annotations/%d/table", annotationID))
}

// doMultipart posts a prepared multipart body and decodes the JSON response.
func (g *Gateway) doMultipart(ctx context.Context, endpoint, contentType string, body io.Reader, result any) error {
	op := http.MethodPost + " " + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, body)
	if err != nil {
		return &ServiceError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	g.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &ServiceError{Op: op, Err: fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &ServiceError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}
