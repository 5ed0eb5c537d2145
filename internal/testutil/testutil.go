// Package testutil provides shared test helpers for setting up content
// directories, gallery stores, and index databases.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/giralt/sitecms/internal/blogindex"
	"github.com/giralt/sitecms/internal/gallerystore"
	"github.com/giralt/sitecms/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *blogindex.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "sitecms-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := blogindex.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContentDir creates a temporary blog content directory with a
// storage.Provider rooted at it.
func TestContentDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestGalleryStore creates a file-mode gallery store backed by a temporary
// data file. The file does not exist until the first Save.
func TestGalleryStore(t *testing.T) (*gallerystore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery-data.json")
	return gallerystore.New(path, gallerystore.ModeFile), path
}

// FakeCommitter records commit calls and returns a fixed result.
type FakeCommitter struct {
	Result bool

	mu       sync.Mutex
	calls    int
	messages []string
}

// Commit records the call and returns the configured result.
func (f *FakeCommitter) Commit(_ context.Context, message string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.messages = append(f.messages, message)
	return f.Result
}

// Calls returns how many times Commit was invoked.
func (f *FakeCommitter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Messages returns the commit messages seen so far.
func (f *FakeCommitter) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}
