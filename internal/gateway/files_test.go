package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestImportImage(t *testing.T) {
	t.Run("uploads multipart form", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "plate1_A01.tiff")
		if err := os.WriteFile(path, []byte("fake pixels"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/import" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}

			if r.FormValue("dataset") != "9" {
				t.Errorf("expected dataset 9, got %q", r.FormValue("dataset"))
			}

			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("expected file part: %v", err)
			}
			defer file.Close()

			if header.Filename != "plate1_A01.tiff" {
				t.Errorf("unexpected filename %q", header.Filename)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 101, "name": "plate1_A01.tiff"},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		image, err := gw.ImportImage(context.Background(), 9, path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if image.ID != 101 {
			t.Errorf("expected image ID 101, got %d", image.ID)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		gw := New(Opts{BaseURL: "http://localhost:1"})

		if _, err := gw.ImportImage(context.Background(), 9, "/nonexistent/file.tiff"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestAttachFile(t *testing.T) {
	t.Run("links file annotation", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "analysis.csv")
		if err := os.WriteFile(path, []byte("well,count\nA01,12\n"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/m/images/8/files/" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}

			if r.FormValue("mimeType") != "text/csv" {
				t.Errorf("expected mimeType text/csv, got %q", r.FormValue("mimeType"))
			}

			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":   60,
					"file": map[string]any{"id": 61, "name": "analysis.csv", "size": 19},
				},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		ann, err := gw.AttachFile(context.Background(), "images", 8, path, "text/csv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ann.ID != 60 || ann.File.Name != "analysis.csv" {
			t.Errorf("unexpected annotation: %+v", ann)
		}
	})
}

func TestDownloadFile(t *testing.T) {
	t.Run("streams file bytes", func(t *testing.T) {
		content := []byte("well,count\nA01,12\n")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/m/annotations/61/file" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write(content)
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		var buf bytes.Buffer
		n, err := gw.DownloadFile(context.Background(), 61, &buf)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != int64(len(content)) || !bytes.Equal(buf.Bytes(), content) {
			t.Errorf("unexpected download: %d bytes, %q", n, buf.String())
		}
	})
}

func TestThumbnail(t *testing.T) {
	t.Run("requests sized thumbnail", func(t *testing.T) {
		jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/m/images/12/thumbnail/" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("size") != "96" {
				t.Errorf("expected size=96, got %q", r.URL.Query().Get("size"))
			}
			w.Write(jpeg)
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		data, err := gw.Thumbnail(context.Background(), 12, 96)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Equal(data, jpeg) {
			t.Errorf("unexpected thumbnail bytes: %v", data)
		}
	})
}

func TestTable(t *testing.T) {
	t.Run("fetches tabular annotation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":      30,
					"name":    "measurements",
					"headers": []string{"well", "count"},
					"rows":    [][]any{{"A01", 12}, {"A02", 17}},
				},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		table, err := gw.Table(context.Background(), 30)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if table.Name != "measurements" || len(table.Rows) != 2 {
			t.Errorf("unexpected table: %+v", table)
		}
	})
}
