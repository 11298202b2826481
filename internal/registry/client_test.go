package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAllPackagesSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all-packages/since/3" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `["author/core@1.0.0", "author/http@2.0.0"]`)
	}))
	defer srv.Close()

	c := newClient(context.Background(), srv.URL)
	entries, err := c.allPackagesSince(3)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(entries) != 2 || entries[0] != "author/core@1.0.0" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestClientFetchManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages/author/core/1.0.0/elm.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, fixtureManifest)
	}))
	defer srv.Close()

	c := newClient(context.Background(), srv.URL)
	pkg, raw, err := c.fetchManifest("author/core", "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if pkg.Name.String() != "author/core" {
		t.Errorf("expected author/core, got %s", pkg.Name)
	}
	if len(raw) == 0 {
		t.Errorf("expected non-empty raw body")
	}
}

func TestClientNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newClient(context.Background(), srv.URL)
	if _, err := c.allPackagesSince(0); err == nil {
		t.Fatalf("expected an error for a 404 response")
	}
}
