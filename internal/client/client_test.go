package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lmicro/gomero/internal/gateway"
	"github.com/lmicro/gomero/internal/shared"
)

// newTestClient wires a Client to a stub gateway server.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gw := gateway.New(gateway.Opts{BaseURL: server.URL})
	gw.SetSessionToken("test-session")
	return New(gw, nil)
}

func page(items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{
		"data": items,
		"meta": map[string]int{"totalCount": len(items)},
	}
}

func respond(t *testing.T, body map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}
}

func TestProjectNavigation(t *testing.T) {
	t.Run("datasets are deduplicated and sorted", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/projects/3/", respond(t, map[string]any{
			"data": map[string]any{"id": 3, "name": "Drug response"},
		}))
		mux.HandleFunc("/m/projects/3/datasets/", respond(t, page(
			map[string]any{"id": 12, "name": "plate B"},
			map[string]any{"id": 4, "name": "plate A"},
			map[string]any{"id": 12, "name": "plate B"},
		)))

		conn := newTestClient(t, mux)

		project, err := conn.Project(context.Background(), 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if project.Name != "Drug response" {
			t.Errorf("unexpected project name %q", project.Name)
		}

		datasets, err := project.Datasets(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(datasets) != 2 {
			t.Fatalf("expected 2 datasets, got %d", len(datasets))
		}
		if datasets[0].ID != 4 || datasets[1].ID != 12 {
			t.Errorf("expected IDs [4 12], got [%d %d]", datasets[0].ID, datasets[1].ID)
		}
	})

	t.Run("new dataset is linked to the project", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/projects/3/", respond(t, map[string]any{
			"data": map[string]any{"id": 3, "name": "Drug response"},
		}))
		mux.HandleFunc("/m/datasets/", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["projectId"] != float64(3) {
				t.Errorf("expected projectId 3, got %v", body["projectId"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 20, "name": body["name"]},
			})
		})

		conn := newTestClient(t, mux)

		project, err := conn.Project(context.Background(), 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		dataset, err := project.NewDataset(context.Background(), "wk12", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dataset.ID != 20 || dataset.Name != "wk12" {
			t.Errorf("unexpected dataset %+v", dataset.Dataset)
		}
	})
}

func TestDatasetSearch(t *testing.T) {
	t.Run("ImagesTagged intersects dataset contents", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/datasets/7/", respond(t, map[string]any{
			"data": map[string]any{"id": 7, "name": "controls"},
		}))
		mux.HandleFunc("/m/datasets/7/images/", respond(t, page(
			map[string]any{"id": 100, "name": "a.tiff"},
			map[string]any{"id": 101, "name": "b.tiff"},
			map[string]any{"id": 102, "name": "c.tiff"},
		)))
		mux.HandleFunc("/m/images/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("tag") != "55" {
				t.Errorf("expected tag=55, got %q", r.URL.Query().Get("tag"))
			}
			// 300 is tagged but lives in another dataset.
			json.NewEncoder(w).Encode(page(
				map[string]any{"id": 102, "name": "c.tiff"},
				map[string]any{"id": 100, "name": "a.tiff"},
				map[string]any{"id": 300, "name": "other.tiff"},
			))
		})

		conn := newTestClient(t, mux)

		dataset, err := conn.Dataset(context.Background(), 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		images, err := dataset.ImagesTagged(context.Background(), 55)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].ID != 100 || images[1].ID != 102 {
			t.Errorf("expected IDs [100 102], got [%d %d]", images[0].ID, images[1].ID)
		}
	})

	t.Run("ImagesWithPair intersects dataset contents", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/datasets/7/", respond(t, map[string]any{
			"data": map[string]any{"id": 7, "name": "controls"},
		}))
		mux.HandleFunc("/m/datasets/7/images/", respond(t, page(
			map[string]any{"id": 100, "name": "a.tiff"},
		)))
		mux.HandleFunc("/m/images/", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("key") != "stain" || q.Get("value") != "DAPI" {
				t.Errorf("unexpected query %v", q)
			}
			json.NewEncoder(w).Encode(page(map[string]any{"id": 100, "name": "a.tiff"}))
		})

		conn := newTestClient(t, mux)

		dataset, err := conn.Dataset(context.Background(), 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		images, err := dataset.ImagesWithPair(context.Background(), "stain", "DAPI")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(images) != 1 || images[0].ID != 100 {
			t.Errorf("expected image 100, got %+v", images)
		}
	})
}

func TestAnnotatable(t *testing.T) {
	annotations := page(
		map[string]any{"id": 1, "kind": "tag", "value": "validated"},
		map[string]any{"id": 2, "kind": "map", "pairs": []map[string]string{
			{"key": "stain", "value": "DAPI"},
			{"key": "objective", "value": "40x"},
		}},
		map[string]any{"id": 3, "kind": "comment", "value": "refocus field 2"},
		map[string]any{"id": 4, "kind": "map", "pairs": []map[string]string{
			{"key": "stain", "value": "GFP"},
		}},
	)

	newImage := func(t *testing.T, mux *http.ServeMux) *Image {
		t.Helper()
		mux.HandleFunc("/m/images/9/", respond(t, map[string]any{
			"data": map[string]any{"id": 9, "name": "field1.tiff"},
		}))
		conn := newTestClient(t, mux)
		image, err := conn.Image(context.Background(), 9)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return image
	}

	t.Run("Tags filters tag annotations", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/images/9/annotations/", respond(t, annotations))
		image := newImage(t, mux)

		tags, err := image.Tags(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tags) != 1 || tags[0].Value != "validated" {
			t.Errorf("unexpected tags %+v", tags)
		}
	})

	t.Run("KeyValuePairs flattens map annotations", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/images/9/annotations/", respond(t, annotations))
		image := newImage(t, mux)

		pairs, err := image.KeyValuePairs(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(pairs) != 3 {
			t.Fatalf("expected 3 pairs, got %d", len(pairs))
		}
		if pairs[2].Key != "stain" || pairs[2].Value != "GFP" {
			t.Errorf("unexpected last pair %+v", pairs[2])
		}
	})

	t.Run("Value returns first match", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/images/9/annotations/", respond(t, annotations))
		image := newImage(t, mux)

		value, err := image.Value(context.Background(), "stain")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "DAPI" {
			t.Errorf("expected DAPI, got %q", value)
		}
	})

	t.Run("Value on missing key", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/images/9/annotations/", respond(t, annotations))
		image := newImage(t, mux)

		_, err := image.Value(context.Background(), "channel")
		if !errors.Is(err, shared.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Comments filters comment annotations", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/images/9/annotations/", respond(t, annotations))
		image := newImage(t, mux)

		comments, err := image.Comments(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(comments) != 1 || comments[0].Value != "refocus field 2" {
			t.Errorf("unexpected comments %+v", comments)
		}
	})

	t.Run("TagWith creates and links", func(t *testing.T) {
		mux := http.NewServeMux()
		var linked bool
		mux.HandleFunc("/m/tags/", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 77, "value": "reviewed"},
			})
		})
		mux.HandleFunc("/m/links/", func(w http.ResponseWriter, r *http.Request) {
			linked = true
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["parentType"] != "images" || body["childType"] != "annotations" {
				t.Errorf("unexpected link body %v", body)
			}
			ids, _ := body["childIds"].([]any)
			if len(ids) != 1 || ids[0] != float64(77) {
				t.Errorf("unexpected child IDs %v", ids)
			}
			w.WriteHeader(http.StatusOK)
		})
		image := newImage(t, mux)

		tag, err := image.TagWith(context.Background(), "reviewed")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tag.ID != 77 || !linked {
			t.Errorf("expected tag 77 linked, got %+v linked=%v", tag, linked)
		}
	})
}

func TestScreenHierarchy(t *testing.T) {
	t.Run("plate images flatten well samples", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/plates/5/", respond(t, map[string]any{
			"data": map[string]any{"id": 5, "name": "plate-001", "rows": 8, "columns": 12},
		}))
		mux.HandleFunc("/m/plates/5/wells/", respond(t, page(
			map[string]any{"id": 1, "row": 0, "column": 0, "wellSamples": []map[string]any{
				{"id": 10, "image": map[string]any{"id": 201, "name": "A1_f0"}},
				{"id": 11, "image": map[string]any{"id": 200, "name": "A1_f1"}},
			}},
			map[string]any{"id": 2, "row": 0, "column": 1, "wellSamples": []map[string]any{
				{"id": 12, "image": map[string]any{"id": 201, "name": "A1_f0"}},
				{"id": 13},
			}},
		)))

		conn := newTestClient(t, mux)

		plate, err := conn.Plate(context.Background(), 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		images, err := plate.Images(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].ID != 200 || images[1].ID != 201 {
			t.Errorf("expected IDs [200 201], got [%d %d]", images[0].ID, images[1].ID)
		}
	})

	t.Run("well field access", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/wells/1/", respond(t, map[string]any{
			"data": map[string]any{"id": 1, "row": 2, "column": 3, "wellSamples": []map[string]any{
				{"id": 10, "image": map[string]any{"id": 300, "name": "C4_f0"}},
				{"id": 11},
			}},
		}))

		conn := newTestClient(t, mux)

		well, err := conn.Well(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if img := well.Image(0); img == nil || img.ID != 300 {
			t.Errorf("expected image 300 at field 0, got %+v", img)
		}
		if img := well.Image(1); img != nil {
			t.Errorf("expected nil for empty field, got %+v", img)
		}
		if img := well.Image(5); img != nil {
			t.Errorf("expected nil for out-of-range field, got %+v", img)
		}
	})
}

func TestTagNamed(t *testing.T) {
	t.Run("returns lowest ID on duplicates", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/tags/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("value") != "validated" {
				t.Errorf("expected value=validated, got %q", r.URL.Query().Get("value"))
			}
			json.NewEncoder(w).Encode(page(
				map[string]any{"id": 40, "value": "validated"},
				map[string]any{"id": 12, "value": "validated"},
			))
		})

		conn := newTestClient(t, mux)

		tag, err := conn.TagNamed(context.Background(), "validated")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tag.ID != 12 {
			t.Errorf("expected tag 12, got %d", tag.ID)
		}
	})

	t.Run("missing tag", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/m/tags/", respond(t, page()))

		conn := newTestClient(t, mux)

		_, err := conn.TagNamed(context.Background(), "absent")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
