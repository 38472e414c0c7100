package forge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGitLabProvider(t *testing.T, handler http.HandlerFunc) *GitLabProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client probes the base URL for rate limit headers.
		if !strings.Contains(r.URL.Path, "/releases") {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewGitLabProvider("test-token", server.URL, "group/project")
	if err != nil {
		t.Fatalf("NewGitLabProvider() error = %v", err)
	}
	return p
}

func TestNewGitLabProvider_Validation(t *testing.T) {
	if _, err := NewGitLabProvider("", "", "g/p"); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := NewGitLabProvider("t", "", ""); err == nil {
		t.Error("expected error for empty project")
	}

	p, err := NewGitLabProvider("t", "", "g/p")
	if err != nil {
		t.Fatalf("NewGitLabProvider() error = %v", err)
	}
	if p.webURL != "https://gitlab.com/g/p" {
		t.Errorf("webURL = %q", p.webURL)
	}
}

func TestGitLabProvider_CreateRelease(t *testing.T) {
	var got map[string]any
	p := newTestGitLabProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/releases") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if tok := r.Header.Get("PRIVATE-TOKEN"); tok != "test-token" {
			t.Errorf("PRIVATE-TOKEN = %q", tok)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"tag_name":"v1.3.0","name":"demo 1.3.0","description":"notes","created_at":"2026-01-02T03:04:05Z"}`))
	})

	rel, err := p.CreateRelease(context.Background(), ReleaseOptions{Tag: "v1.3.0", Name: "demo 1.3.0", Body: "notes", Target: "abc123"})
	if err != nil {
		t.Fatalf("CreateRelease() error = %v", err)
	}

	if got["tag_name"] != "v1.3.0" || got["description"] != "notes" || got["ref"] != "abc123" {
		t.Errorf("request body = %v", got)
	}
	if rel.Tag != "v1.3.0" || rel.Body != "notes" {
		t.Errorf("release = %+v", rel)
	}
	if !strings.HasSuffix(rel.URL, "/group/project/-/releases/v1.3.0") {
		t.Errorf("URL = %q", rel.URL)
	}
}

func TestGitLabProvider_CreateRelease_Exists(t *testing.T) {
	p := newTestGitLabProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Release already exists"}`))
	})

	_, err := p.CreateRelease(context.Background(), ReleaseOptions{Tag: "v1.3.0"})
	if !errors.Is(err, ErrReleaseExists) {
		t.Errorf("CreateRelease() error = %v, want ErrReleaseExists", err)
	}
}

func TestGitLabProvider_GetRelease_NotFound(t *testing.T) {
	p := newTestGitLabProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"404 Not Found"}`))
	})

	if _, err := p.GetRelease(context.Background(), "v9.9.9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRelease() error = %v, want ErrNotFound", err)
	}
}
