// Package gallerystore is the single point of truth for reading and writing
// the gallery document. It abstracts over two deployment modes: "file",
// where the JSON file on disk is canonical, and "memory", for read-only
// filesystems where writes live in a process-wide cache and only become
// permanent once the remote committer pushes them.
package gallerystore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/giralt/sitecms/internal/models"
)

// Mode selects the write backend.
type Mode string

const (
	// ModeFile persists writes to the backing JSON file.
	ModeFile Mode = "file"
	// ModeMemory shadows writes into an in-process cache; the backing file
	// is only read once to seed the cache.
	ModeMemory Mode = "memory"
)

// Store reads and writes the gallery document.
//
// The cache plays two roles. In memory mode it owns the document for the
// process lifetime. In file mode it is unused for reads (every Load
// re-reads disk) and cleared after every Save so a long-lived process never
// serves stale data.
type Store struct {
	path string
	mode Mode

	mu        sync.Mutex
	cache     *models.GalleryDocument
	cacheInit bool
}

// New creates a store backed by the JSON file at path, writing according
// to mode.
func New(path string, mode Mode) *Store {
	return &Store{path: path, mode: mode}
}

// Mode reports the configured write backend.
func (s *Store) Mode() Mode { return s.mode }

// Load returns the current document. It never fails: a missing or corrupt
// file degrades to an empty document so page rendering keeps working.
// Callers receive a deep copy and may mutate it freely.
func (s *Store) Load() *models.GalleryDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked().Clone()
}

func (s *Store) loadLocked() *models.GalleryDocument {
	if s.mode == ModeMemory {
		if s.cacheInit {
			return s.cache
		}
		// One-time seed from the bundled baseline file.
		s.cache = s.readFile()
		s.cacheInit = true
		return s.cache
	}
	return s.readFile()
}

func (s *Store) readFile() *models.GalleryDocument {
	doc := &models.GalleryDocument{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Debug("gallerystore: read failed, using empty document",
			slog.String("path", s.path), slog.String("error", err.Error()))
		doc.Normalize()
		return doc
	}
	if err := json.Unmarshal(data, doc); err != nil {
		slog.Warn("gallerystore: parse failed, using empty document",
			slog.String("path", s.path), slog.String("error", err.Error()))
		doc = &models.GalleryDocument{}
	}
	doc.Normalize()
	return doc
}

// Save persists the document. File mode writes pretty-printed JSON to disk
// and invalidates the cache; memory mode stores a copy in the cache and
// cannot fail.
func (s *Store) Save(doc *models.GalleryDocument) error {
	doc.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeMemory {
		s.cache = doc.Clone()
		s.cacheInit = true
		return nil
	}

	data, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("gallerystore: marshal: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("gallerystore: save: %w", err)
	}
	// Next Load re-reads disk.
	s.cache = nil
	s.cacheInit = false
	return nil
}

// Invalidate clears cache state unconditionally. After a call the next
// memory-mode Load re-seeds from the baseline file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.cacheInit = false
}

// Serialize returns the current document as pretty-printed two-space JSON.
// It is byte-stable: repeated calls without an intervening mutation produce
// identical output, so the committer never pushes spurious diffs.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := marshalDocument(s.loadLocked())
	if err != nil {
		return nil, fmt.Errorf("gallerystore: serialize: %w", err)
	}
	return data, nil
}

func marshalDocument(doc *models.GalleryDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// writeFileAtomic writes via tmp file, fsync, rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".gallery-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
