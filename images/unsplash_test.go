package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUnsplashSearchPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "golang" {
			t.Errorf("unexpected query %q", got)
		}
		w.Write([]byte(`{"results":[{"id":"abc","urls":{"regular":"https://images.unsplash.com/photo-abc?ixid=1"},"alt_description":"gopher","user":{"name":"Jane","username":"jane"}}]}`))
	}))
	defer srv.Close()

	client := NewUnsplashClient(UnsplashConfig{AccessKey: "test-key", BaseURL: srv.URL})

	photos := client.SearchPhotos(context.Background(), "golang", 1, "")
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(photos))
	}
	if photos[0].ID != "abc" || photos[0].User.Name != "Jane" {
		t.Fatalf("unexpected photo %+v", photos[0])
	}
}

func TestUnsplashMissingKeyFallsBack(t *testing.T) {
	client := NewUnsplashClient(UnsplashConfig{})

	photos := client.SearchPhotos(context.Background(), "programming tips", 1, "")
	if len(photos) == 0 {
		t.Fatal("expected placeholder photos without credentials")
	}
	for _, p := range photos {
		if !strings.HasPrefix(p.ID, "placeholder-") {
			t.Fatalf("expected placeholder id, got %q", p.ID)
		}
	}

	photo := client.RandomPhoto(context.Background(), "anything", "")
	if photo == nil {
		t.Fatal("RandomPhoto must never return nil")
	}
}

func TestUnsplashServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewUnsplashClient(UnsplashConfig{AccessKey: "test-key", BaseURL: srv.URL})
	client.pick = func(n int) int { return 0 }

	photos := client.SearchPhotos(context.Background(), "technology stack", 1, "")
	if len(photos) == 0 {
		t.Fatal("expected placeholder photos after server error")
	}

	photo := client.RandomPhoto(context.Background(), "technology", "")
	if photo == nil {
		t.Fatal("RandomPhoto must never return nil")
	}
	if !strings.Contains(photo.URLs.Regular, "images.unsplash.com") {
		t.Fatalf("unexpected placeholder URL %q", photo.URLs.Regular)
	}
}

func TestUnsplashOptimizedURL(t *testing.T) {
	client := NewUnsplashClient(UnsplashConfig{})

	var photo Photo
	photo.URLs.Regular = "https://images.unsplash.com/photo-abc?ixid=xyz&w=500"

	got := client.OptimizedURL(&photo, 800, 0, "")
	if strings.Contains(got, "ixid") {
		t.Fatalf("expected original query stripped, got %q", got)
	}
	for _, want := range []string{"w=800", "fm=webp", "q=80", "auto=format"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "fit=crop") {
		t.Fatalf("did not expect crop without height, got %q", got)
	}

	got = client.OptimizedURL(&photo, 800, 400, "jpg")
	for _, want := range []string{"h=400", "fit=crop", "fm=jpg"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}

	if got := client.OptimizedURL(nil, 800, 400, ""); got != "" {
		t.Fatalf("expected empty URL for nil photo, got %q", got)
	}
}

func TestUnsplashPhotoForTags(t *testing.T) {
	calls := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query().Get("query"))
		w.Write([]byte(`{"id":"p1","urls":{"regular":"https://images.unsplash.com/photo-p1"},"user":{"name":"A","username":"a"}}`))
	}))
	defer srv.Close()

	client := NewUnsplashClient(UnsplashConfig{AccessKey: "test-key", BaseURL: srv.URL})

	photo := client.PhotoForTags(context.Background(), []string{"Go", "testing"})
	if photo == nil || photo.ID != "p1" {
		t.Fatalf("unexpected photo %+v", photo)
	}
	if len(calls) != 1 || calls[0] != "golang programming" {
		t.Fatalf("expected mapped tag query, got %v", calls)
	}
}
