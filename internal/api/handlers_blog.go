package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/giralt/sitecms/internal/apperr"
	"github.com/giralt/sitecms/internal/blog"
)

// BlogHandler holds blog route handlers.
type BlogHandler struct {
	svc *blog.Service
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(svc *blog.Service) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// ListPosts handles GET /api/blog/posts with optional ?tag= filtering.
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	posts, err := h.svc.Posts(r.Context(), tag)
	if err != nil {
		slog.Error("list posts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"total": len(posts),
	})
}

// GetPost handles GET /api/blog/posts/{slug}. Unpublished posts are hidden
// from the public surface.
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.svc.Post(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		} else {
			slog.Error("get post failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if !post.Published {
		writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// RelatedPosts handles GET /api/blog/posts/{slug}/related.
func (h *BlogHandler) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	posts, err := h.svc.Related(r.Context(), slug, limit)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("post not found"))
		} else {
			slog.Error("related posts failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// ListTags handles GET /api/blog/tags.
func (h *BlogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context())
	if err != nil {
		slog.Error("list tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// Search handles GET /api/blog/search?q=.
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("blog search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
