package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giralt/sitecms/internal/apperr"
	"github.com/giralt/sitecms/internal/galleryservice"
	"github.com/giralt/sitecms/internal/models"
	"github.com/giralt/sitecms/internal/sse"
)

const maxBodyBytes = 1 << 20 // 1 MB

// GalleryHandler holds gallery route handlers.
type GalleryHandler struct {
	svc    *galleryservice.Service
	broker *sse.Broker
}

// NewGalleryHandler creates a new GalleryHandler. broker may be nil.
func NewGalleryHandler(svc *galleryservice.Service, broker *sse.Broker) *GalleryHandler {
	return &GalleryHandler{svc: svc, broker: broker}
}

func (h *GalleryHandler) notifyChanged() {
	if h.broker != nil {
		h.broker.PublishGalleryUpdated()
	}
}

// GetGallery handles GET /api/gallery: the full public document.
func (h *GalleryHandler) GetGallery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.GalleryDocument{
		Categories: h.svc.Categories(),
		Images:     h.svc.Images(),
	})
}

// ListImages handles GET /api/gallery/images and GET /api/admin/images,
// with optional ?category= filtering.
func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var images []models.Image
	if category != "" {
		images = h.svc.ImagesByCategory(category)
	} else {
		images = h.svc.Images()
	}
	writeJSON(w, http.StatusOK, images)
}

// GetImage handles GET /api/admin/images/{id}.
func (h *GalleryHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	img, err := h.svc.ImageByID(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("image not found"))
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// CreateImage handles POST /api/admin/images.
func (h *GalleryHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	img, committed, err := h.svc.AddImage(r.Context(), req.Category, req.Title, req.Image)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown category"))
			return
		}
		slog.Error("create image failed", slog.String("title", req.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusCreated, ImageResponse{Image: *img, CommitSuccess: committed})
}

// UpdateImage handles PUT /api/admin/images/{id}.
func (h *GalleryHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")

	var req UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	img, committed, err := h.svc.UpdateImage(r.Context(), id, galleryservice.ImageUpdate{
		Category: req.Category,
		Title:    req.Title,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("image not found"))
			return
		}
		slog.Error("update image failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusOK, ImageResponse{Image: *img, CommitSuccess: committed})
}

// DeleteImage handles DELETE /api/admin/images/{id}.
func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	committed, err := h.svc.DeleteImage(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("image not found"))
			return
		}
		slog.Error("delete image failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, CommitSuccess: committed})
}

// ListCategories handles GET /api/gallery/categories and
// GET /api/admin/categories.
func (h *GalleryHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Categories())
}

// CreateCategory handles POST /api/admin/categories.
func (h *GalleryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	cat, committed, err := h.svc.AddCategory(r.Context(), req.ID, req.Label)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorBody("category already exists"))
			return
		}
		slog.Error("create category failed", slog.String("id", req.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusCreated, CategoryResponse{Category: *cat, CommitSuccess: committed})
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (h *GalleryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	cat, committed, err := h.svc.UpdateCategory(r.Context(), id, req.Label)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("category not found"))
			return
		}
		slog.Error("update category failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusOK, CategoryResponse{Category: *cat, CommitSuccess: committed})
}

// DeleteCategory handles DELETE /api/admin/categories/{id}.
func (h *GalleryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	committed, err := h.svc.DeleteCategory(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrCategoryInUse):
			writeJSON(w, http.StatusConflict, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("category not found"))
		default:
			slog.Error("delete category failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notifyChanged()
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, CommitSuccess: committed})
}
