package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versions.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`["15.1.1","14.24.1","14.23.1"]`))
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBaseURL(srv.URL)
	version, err := fetcher.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if version != "15.1.1" {
		t.Fatalf("version = %q, want 15.1.1", version)
	}
}

func TestLatestVersionEmptyManifest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBaseURL(srv.URL)
	if _, err := fetcher.LatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for empty manifest")
	}
}

func TestChampionsDatasetFetchPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"type":"champion","data":{}}`))
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBaseURL(srv.URL)
	body, err := Champions().Fetch(context.Background(), fetcher, "15.1.1")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotPath != "/cdn/15.1.1/data/en_US/champion.json" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(body) == 0 {
		t.Fatal("empty body")
	}
}

func TestFetchPropagatesHTTPErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewFetcherWithBaseURL(srv.URL)
	if _, err := Items().Fetch(context.Background(), fetcher, "15.1.1"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(Champions())
	r.Register(Items())
	// Re-registering keeps a single entry and its position
	r.Register(Champions())

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d datasets, want 2", len(all))
	}
	if all[0].Name() != "champions" || all[1].Name() != "items" {
		t.Fatalf("order = %s, %s", all[0].Name(), all[1].Name())
	}

	d, err := r.Get("items")
	if err != nil {
		t.Fatalf("Get(items) error = %v", err)
	}
	if d.Filename() != "item.json" {
		t.Fatalf("Filename() = %q", d.Filename())
	}

	if _, err := r.Get("runes"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	for _, name := range []string{"champions", "items"} {
		if _, err := r.Get(name); err != nil {
			t.Fatalf("default registry missing %s: %v", name, err)
		}
	}
}
