package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/lmicro/gomero/internal/models"
)

// pagedHandler serves a collection in fixed-size pages the way the gateway does.
func pagedHandler(t *testing.T, path string, items []map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("expected path %s, got %s", path, r.URL.Path)
			http.NotFound(w, r)
			return
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = len(items)
		}

		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		page := items[offset:end]

		json.NewEncoder(w).Encode(map[string]any{
			"data": page,
			"meta": map[string]int{"totalCount": len(items)},
		})
	}
}

func TestBrowserListing(t *testing.T) {
	t.Run("Projects", func(t *testing.T) {
		items := []map[string]any{
			{"id": 1, "name": "Screening 2025", "childCount": 4},
			{"id": 2, "name": "Confocal stacks"},
		}

		server := httptest.NewServer(pagedHandler(t, "/m/projects/", items))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		projects, err := gw.Browser().Projects(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(projects) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(projects))
		}

		if projects[0].Name != "Screening 2025" || projects[0].DatasetCount != 4 {
			t.Errorf("unexpected first project: %+v", projects[0])
		}
	})

	t.Run("walks all pages", func(t *testing.T) {
		items := make([]map[string]any, 0, defaultPageSize+50)
		for i := 0; i < defaultPageSize+50; i++ {
			items = append(items, map[string]any{"id": i + 1, "name": "img"})
		}

		server := httptest.NewServer(pagedHandler(t, "/m/datasets/7/images/", items))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		images, err := gw.Browser().DatasetImages(context.Background(), 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(images) != defaultPageSize+50 {
			t.Errorf("expected %d images, got %d", defaultPageSize+50, len(images))
		}

		if images[len(images)-1].ID != int64(defaultPageSize+50) {
			t.Errorf("unexpected last image ID: %d", images[len(images)-1].ID)
		}
	})

	t.Run("ImagesTagged sends tag filter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("tag") != "42" {
				t.Errorf("expected tag=42, got %q", r.URL.Query().Get("tag"))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"id": 5, "name": "tagged.tiff"}},
				"meta": map[string]int{"totalCount": 1},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		images, err := gw.Browser().ImagesTagged(context.Background(), 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(images) != 1 || images[0].ID != 5 {
			t.Errorf("unexpected images: %+v", images)
		}
	})

	t.Run("ImagesWithPair sends key and value", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("key") != "stain" || q.Get("value") != "DAPI" {
				t.Errorf("expected key=stain value=DAPI, got %v", q)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{},
				"meta": map[string]int{"totalCount": 0},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		if _, err := gw.Browser().ImagesWithPair(context.Background(), "stain", "DAPI"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("ImagesNamed scopes to dataset", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("dataset") != "9" || q.Get("name") != "plate1_A01.tiff" {
				t.Errorf("unexpected query: %v", q)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"id": 11, "name": "plate1_A01.tiff"}},
				"meta": map[string]int{"totalCount": 1},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		images, err := gw.Browser().ImagesNamed(context.Background(), 9, "plate1_A01.tiff")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(images) != 1 {
			t.Errorf("expected 1 image, got %d", len(images))
		}
	})
}

func TestBrowserSingleObjects(t *testing.T) {
	t.Run("Image", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/m/images/12/" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 12, "name": "stack.ome.tiff", "sizeZ": 30},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		image, err := gw.Browser().Image(context.Background(), 12)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if image.Name != "stack.ome.tiff" || image.SizeZ != 30 {
			t.Errorf("unexpected image: %+v", image)
		}
	})

	t.Run("Well includes samples", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id": 3, "row": 0, "column": 1, "plateId": 2,
					"wellSamples": []map[string]any{
						{"id": 31, "image": map[string]any{"id": 100, "name": "A02_f0"}},
						{"id": 32, "image": map[string]any{"id": 101, "name": "A02_f1"}},
					},
				},
			})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		well, err := gw.Browser().Well(context.Background(), 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(well.Samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(well.Samples))
		}
		if well.Samples[1].Image == nil || well.Samples[1].Image.ID != 101 {
			t.Errorf("unexpected second sample: %+v", well.Samples[1])
		}
	})
}

func TestBrowserAnnotations(t *testing.T) {
	t.Run("mixed annotation kinds", func(t *testing.T) {
		items := []map[string]any{
			{"id": 1, "kind": models.AnnotationTag, "value": "controls"},
			{"id": 2, "kind": models.AnnotationMap, "pairs": []map[string]string{{"key": "stain", "value": "DAPI"}}},
			{"id": 3, "kind": models.AnnotationFile, "file": map[string]any{"id": 55, "name": "analysis.csv", "size": 1024}},
		}

		server := httptest.NewServer(pagedHandler(t, "/m/images/8/annotations/", items))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		anns, err := gw.Browser().Annotations(context.Background(), "images", 8)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(anns) != 3 {
			t.Fatalf("expected 3 annotations, got %d", len(anns))
		}

		if anns[0].Tag().Value != "controls" {
			t.Errorf("unexpected tag: %+v", anns[0])
		}
		if anns[1].Map().Pairs[0].Key != "stain" {
			t.Errorf("unexpected map: %+v", anns[1])
		}
		if anns[2].File == nil || anns[2].File.Name != "analysis.csv" {
			t.Errorf("unexpected file: %+v", anns[2])
		}
	})
}

func TestImageParentCount(t *testing.T) {
	t.Run("with exclusion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/m/images/5/parents/count" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("exclude") != "9" {
				t.Errorf("expected exclude=9, got %q", r.URL.Query().Get("exclude"))
			}
			json.NewEncoder(w).Encode(map[string]any{"data": 2})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		count, err := gw.Browser().ImageParentCount(context.Background(), 5, 9)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}
	})

	t.Run("without exclusion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("exclude") {
				t.Error("expected no exclude parameter")
			}
			json.NewEncoder(w).Encode(map[string]any{"data": 0})
		}))
		defer server.Close()

		gw := New(Opts{BaseURL: server.URL})

		count, err := gw.Browser().ImageParentCount(context.Background(), 5, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if count != 0 {
			t.Errorf("expected count 0, got %d", count)
		}
	})
}
