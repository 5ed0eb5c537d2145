// Package galleryservice implements entity-level CRUD over gallery images
// and categories, layered on the store and the remote committer.
package galleryservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/giralt/sitecms/internal/apperr"
	"github.com/giralt/sitecms/internal/gallerystore"
	"github.com/giralt/sitecms/internal/models"
)

// Committer makes local mutations durable in the remote repository.
// Commit returns whether the push succeeded; it never fails hard.
type Committer interface {
	Commit(ctx context.Context, message string) bool
}

// NopCommitter satisfies Committer without a remote repository.
type NopCommitter struct{}

// Commit always reports false: nothing was pushed anywhere.
func (NopCommitter) Commit(context.Context, string) bool { return false }

// Service orchestrates the store and the committer. Every mutating
// operation persists locally first, then awaits the remote commit and
// reports its outcome so the admin UI can warn "saved locally but not yet
// committed".
type Service struct {
	store     *gallerystore.Store
	committer Committer
	now       func() time.Time
}

// New creates a gallery service.
func New(store *gallerystore.Store, committer Committer) *Service {
	if committer == nil {
		committer = NopCommitter{}
	}
	return &Service{store: store, committer: committer, now: time.Now}
}

// SetClock overrides the timestamp source. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Categories returns all categories in display order.
func (s *Service) Categories() []models.Category {
	return s.store.Load().Categories
}

// Images returns all images in display order.
func (s *Service) Images() []models.Image {
	return s.store.Load().Images
}

// ImageByID returns the image with the given id, or apperr.ErrNotFound.
func (s *Service) ImageByID(id string) (*models.Image, error) {
	for _, img := range s.store.Load().Images {
		if img.ID == id {
			return &img, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// ImagesByCategory returns the images referencing categoryID. An empty
// result is an empty slice, distinct from not-found on single lookups.
func (s *Service) ImagesByCategory(categoryID string) []models.Image {
	out := []models.Image{}
	for _, img := range s.store.Load().Images {
		if img.Category == categoryID {
			out = append(out, img)
		}
	}
	return out
}

// ImageUpdate carries the updatable image fields; nil means leave as-is.
// ID and CreatedAt are never updatable.
type ImageUpdate struct {
	Category *string
	Title    *string
	Image    *string
}

// AddImage creates an image with a deterministic slug id and both
// timestamps set to now, persists it, and commits. The category must exist.
func (s *Service) AddImage(ctx context.Context, category, title, imagePath string) (*models.Image, bool, error) {
	doc := s.store.Load()
	if !hasCategory(doc, category) {
		return nil, false, fmt.Errorf("category %q: %w", category, apperr.ErrNotFound)
	}

	now := s.timestamp()
	img := models.Image{
		ID:        generateImageID(doc, category, title),
		Category:  category,
		Title:     title,
		Image:     imagePath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Images = append(doc.Images, img)
	if err := s.store.Save(doc); err != nil {
		return nil, false, err
	}
	committed := s.committer.Commit(ctx, fmt.Sprintf("Add gallery image: %s", title))
	return &img, committed, nil
}

// UpdateImage merges the allowed fields into the image with the given id and
// refreshes updatedAt. A missing id returns apperr.ErrNotFound without
// touching the committer.
func (s *Service) UpdateImage(ctx context.Context, id string, upd ImageUpdate) (*models.Image, bool, error) {
	doc := s.store.Load()
	idx := imageIndex(doc, id)
	if idx < 0 {
		return nil, false, apperr.ErrNotFound
	}

	img := &doc.Images[idx]
	if upd.Category != nil {
		if !hasCategory(doc, *upd.Category) {
			return nil, false, fmt.Errorf("category %q: %w", *upd.Category, apperr.ErrNotFound)
		}
		img.Category = *upd.Category
	}
	if upd.Title != nil {
		img.Title = *upd.Title
	}
	if upd.Image != nil {
		img.Image = *upd.Image
	}
	img.UpdatedAt = s.timestamp()

	if err := s.store.Save(doc); err != nil {
		return nil, false, err
	}
	committed := s.committer.Commit(ctx, fmt.Sprintf("Update gallery image: %s", img.Title))
	updated := *img
	return &updated, committed, nil
}

// DeleteImage removes the image with the given id, then persists and
// commits. A missing id returns apperr.ErrNotFound.
func (s *Service) DeleteImage(ctx context.Context, id string) (bool, error) {
	doc := s.store.Load()
	idx := imageIndex(doc, id)
	if idx < 0 {
		return false, apperr.ErrNotFound
	}
	title := doc.Images[idx].Title
	doc.Images = append(doc.Images[:idx], doc.Images[idx+1:]...)
	if err := s.store.Save(doc); err != nil {
		return false, err
	}
	return s.committer.Commit(ctx, fmt.Sprintf("Delete gallery image: %s", title)), nil
}

// AddCategory creates a category. The id is normalized to lowercase
// slug form; a colliding id returns apperr.ErrAlreadyExists before any
// mutation.
func (s *Service) AddCategory(ctx context.Context, id, label string) (*models.Category, bool, error) {
	slug := Slugify(id)
	if slug == "" {
		return nil, false, fmt.Errorf("category id %q is empty after normalization", id)
	}

	doc := s.store.Load()
	if hasCategory(doc, slug) {
		return nil, false, fmt.Errorf("category %q: %w", slug, apperr.ErrAlreadyExists)
	}
	cat := models.Category{ID: slug, Label: label}
	doc.Categories = append(doc.Categories, cat)
	if err := s.store.Save(doc); err != nil {
		return nil, false, err
	}
	committed := s.committer.Commit(ctx, fmt.Sprintf("Add gallery category: %s", label))
	return &cat, committed, nil
}

// UpdateCategory changes the label of an existing category. The id is
// immutable.
func (s *Service) UpdateCategory(ctx context.Context, id, label string) (*models.Category, bool, error) {
	doc := s.store.Load()
	for i := range doc.Categories {
		if doc.Categories[i].ID != id {
			continue
		}
		doc.Categories[i].Label = label
		if err := s.store.Save(doc); err != nil {
			return nil, false, err
		}
		cat := doc.Categories[i]
		committed := s.committer.Commit(ctx, fmt.Sprintf("Update gallery category: %s", label))
		return &cat, committed, nil
	}
	return nil, false, apperr.ErrNotFound
}

// DeleteCategory removes a category that no image references. A referenced
// category returns apperr.ErrCategoryInUse; the check runs before any
// mutation.
func (s *Service) DeleteCategory(ctx context.Context, id string) (bool, error) {
	doc := s.store.Load()

	refs := 0
	for _, img := range doc.Images {
		if img.Category == id {
			refs++
		}
	}
	if refs > 0 {
		return false, fmt.Errorf("cannot delete category %q: referenced by %d images: %w", id, refs, apperr.ErrCategoryInUse)
	}

	for i := range doc.Categories {
		if doc.Categories[i].ID != id {
			continue
		}
		label := doc.Categories[i].Label
		doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
		if err := s.store.Save(doc); err != nil {
			return false, err
		}
		return s.committer.Commit(ctx, fmt.Sprintf("Delete gallery category: %s", label)), nil
	}
	return false, apperr.ErrNotFound
}

// timestamp formats now as ISO-8601 with millisecond precision, matching
// the canonical data file.
func (s *Service) timestamp() string {
	return s.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen, trimming leading and trailing hyphens.
func Slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// generateImageID derives the image id from category and title, appending a
// numeric suffix on collision: docks-test-pier, docks-test-pier-1, ...
func generateImageID(doc *models.GalleryDocument, category, title string) string {
	base := category + "-" + Slugify(title)
	id := base
	for counter := 1; imageIndex(doc, id) >= 0; counter++ {
		id = fmt.Sprintf("%s-%d", base, counter)
	}
	return id
}

func imageIndex(doc *models.GalleryDocument, id string) int {
	for i := range doc.Images {
		if doc.Images[i].ID == id {
			return i
		}
	}
	return -1
}

func hasCategory(doc *models.GalleryDocument, id string) bool {
	for i := range doc.Categories {
		if doc.Categories[i].ID == id {
			return true
		}
	}
	return false
}
