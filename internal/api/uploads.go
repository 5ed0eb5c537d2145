package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/giralt/sitecms/internal/storage"
)

const (
	uploadDir      = "images/uploads"
	maxUploadBytes = 25 << 20 // 25 MB
)

var allowedUploadExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {},
}

// UploadHandler accepts gallery asset uploads into the public images
// directory. The returned URL path is what addImage stores in the document.
type UploadHandler struct {
	store storage.Provider // rooted at the public assets directory
}

// NewUploadHandler creates a handler writing through the given provider.
func NewUploadHandler(store storage.Provider) *UploadHandler {
	return &UploadHandler{store: store}
}

// safeName validates that the filename is a plain name (no separators, no
// traversal) with an allowed image extension.
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	ext := strings.ToLower(filepath.Ext(cleaned))
	if _, ok := allowedUploadExts[ext]; !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	return cleaned, nil
}

// Upload handles POST /api/admin/uploads (multipart/form-data, field "file").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	name, err := safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	rel := path.Join(uploadDir, name)
	if err := h.store.Write(rel, data); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store file"))
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Filename: name,
		Size:     int64(len(data)),
		URL:      "/" + rel,
	})
}
