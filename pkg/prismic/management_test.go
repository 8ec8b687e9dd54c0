package prismic

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestManagementClient returns a management client pointed at a test
// server for both the custom types and asset APIs.
func newTestManagementClient(srv *httptest.Server) *ManagementClient {
	return &ManagementClient{
		repository:     "test-repo",
		token:          "permanent-token",
		customTypesURL: srv.URL,
		assetAPIURL:    srv.URL,
		httpClient:     srv.Client(),
	}
}

func TestGetCustomTypes(t *testing.T) {
	var gotAuth, gotRepo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRepo = r.Header.Get("repository")
		if r.URL.Path != "/customtypes" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `[{"id": "article", "label": "Article"}, {"id": "page", "label": "Page"}]`)
	}))
	defer srv.Close()

	types, err := newTestManagementClient(srv).GetCustomTypes()
	if err != nil {
		t.Fatalf("GetCustomTypes() error = %v", err)
	}

	if len(types) != 2 {
		t.Errorf("GetCustomTypes() returned %d types, want 2", len(types))
	}
	if gotAuth != "Bearer permanent-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer permanent-token")
	}
	if gotRepo != "test-repo" {
		t.Errorf("repository header = %q, want %q", gotRepo, "test-repo")
	}
}

func TestGetSharedSlices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/slices" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `[{"id": "hero"}]`)
	}))
	defer srv.Close()

	slices, err := newTestManagementClient(srv).GetSharedSlices()
	if err != nil {
		t.Fatalf("GetSharedSlices() error = %v", err)
	}
	if len(slices) != 1 {
		t.Errorf("GetSharedSlices() returned %d slices, want 1", len(slices))
	}
}

func TestListAssets_Pagination(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		if got := r.URL.Query().Get("limit"); got != "1000" {
			t.Errorf("limit query param = %q, want %q", got, "1000")
		}

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"items": [
				{"id": "a", "url": "https://images.example/a.png", "filename": "a.png"},
				{"id": "b", "url": "https://images.example/b.png", "filename": "b.png"}
			], "cursor": "c1"}`)
		case "c1":
			fmt.Fprint(w, `{"items": [
				{"id": "c", "url": "https://images.example/c.png", "filename": "c.png"}
			], "cursor": null}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
			http.Error(w, "bad cursor", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	assets, err := newTestManagementClient(srv).ListAssets()
	if err != nil {
		t.Fatalf("ListAssets() error = %v", err)
	}

	if requests != 2 {
		t.Errorf("listing requests = %d, want 2", requests)
	}
	if len(assets) != 3 {
		t.Fatalf("ListAssets() returned %d assets, want 3", len(assets))
	}
	for i, want := range []string{"a.png", "b.png", "c.png"} {
		if assets[i].Filename != want {
			t.Errorf("assets[%d].Filename = %q, want %q", i, assets[i].Filename, want)
		}
	}
}

func TestListAssets_PageErrorAbortsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "" {
			fmt.Fprint(w, `{"items": [{"id": "a", "url": "https://images.example/a.png", "filename": "a.png"}], "cursor": "c1"}`)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	assets, err := newTestManagementClient(srv).ListAssets()
	if err == nil {
		t.Fatal("ListAssets() expected error on failing page, got nil")
	}
	if assets != nil {
		t.Errorf("ListAssets() returned partial result of %d assets on error", len(assets))
	}
}

func TestListAssets_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [], "cursor": null}`)
	}))
	defer srv.Close()

	assets, err := newTestManagementClient(srv).ListAssets()
	if err != nil {
		t.Fatalf("ListAssets() error = %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("ListAssets() returned %d assets, want 0", len(assets))
	}
}
