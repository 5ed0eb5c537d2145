package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giralt/sitecms/internal/apperr"
)

func TestFileSHA(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Query().Get("ref") != "main" {
			t.Errorf("ref = %q, want main", r.URL.Query().Get("ref"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha": "abc123", "content": "", "encoding": "base64",
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("secret", srv.URL)
	sha, err := c.FileSHA(context.Background(), "giralt/site", "main", "data/gallery-data.json")
	if err != nil {
		t.Fatalf("FileSHA: %v", err)
	}
	if sha != "abc123" {
		t.Errorf("sha = %q", sha)
	}
	if gotAuth != "token secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFileSHAMissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("secret", srv.URL)
	_, err := c.FileSHA(context.Background(), "giralt/site", "main", "data/gallery-data.json")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFileSHABadRepo(t *testing.T) {
	c := NewClient("secret")
	if _, err := c.FileSHA(context.Background(), "nodash", "main", "f"); err == nil {
		t.Error("expected error for repo without owner/name")
	}
}

func TestPutFileConflictStatuses(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewClientWithBaseURL("secret", srv.URL)
		err := c.PutFile(context.Background(), "giralt/site", "main", "f.json", "msg", "Zm9v", "stale")
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("status %d: err = %v, want ErrConflict", status, err)
		}
		srv.Close()
	}
}

func TestPutFilePayload(t *testing.T) {
	var got putRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("secret", srv.URL)
	if err := c.PutFile(context.Background(), "giralt/site", "main", "f.json", "Add image", "Zm9v", "abc"); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if got.Message != "Add image" || got.Content != "Zm9v" || got.Branch != "main" || got.SHA != "abc" {
		t.Errorf("payload = %+v", got)
	}
}

func TestPutFileOmitsEmptySHA(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("secret", srv.URL)
	if err := c.PutFile(context.Background(), "giralt/site", "main", "f.json", "Create", "Zm9v", ""); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if _, present := raw["sha"]; present {
		t.Error("create payload must not carry a sha field")
	}
}
