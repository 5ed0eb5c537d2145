package blog

import (
	"context"
	"errors"
	"sort"

	"github.com/giralt/sitecms/internal/apperr"
	"github.com/giralt/sitecms/internal/blogindex"
	"github.com/giralt/sitecms/internal/models"
	"github.com/giralt/sitecms/internal/storage"
)

// Service coordinates content storage and the post index. Listings come
// from the index; post bodies are read from disk on demand.
type Service struct {
	store storage.Provider
	db    blogindex.PostIndex
}

// NewService creates a blog service.
func NewService(store storage.Provider, db blogindex.PostIndex) *Service {
	return &Service{store: store, db: db}
}

// Post returns the full post with the given slug, or apperr.ErrNotFound.
// Drafts resolve too; the handler decides whether to expose them.
func (s *Service) Post(_ context.Context, slug string) (*models.Post, error) {
	path, err := s.db.PathBySlug(slug)
	if errors.Is(err, apperr.ErrNotFound) {
		// The index may lag right after startup; fall back to the
		// conventional file locations.
		return s.postFromDisk(slug)
	}
	if err != nil {
		return nil, err
	}
	data, err := s.store.Read(path)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return ParsePost(slugFromPath(path), data)
}

func (s *Service) postFromDisk(slug string) (*models.Post, error) {
	for _, name := range []string{slug + ".mdx", slug + ".md"} {
		data, err := s.store.Read(name)
		if err != nil {
			continue
		}
		return ParsePost(slug, data)
	}
	return nil, apperr.ErrNotFound
}

// Posts returns published post metadata sorted by date descending,
// optionally filtered by tag.
func (s *Service) Posts(_ context.Context, tag string) ([]models.PostMeta, error) {
	rows, err := s.db.ListPosts(tag, false)
	if err != nil {
		return nil, err
	}
	return metasFromRows(rows), nil
}

// Tags returns the distinct tag set across published posts, sorted.
func (s *Service) Tags(_ context.Context) ([]string, error) {
	tags, err := s.db.Tags()
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)
	return tags, nil
}

// Related returns up to limit published posts ranked by tag overlap with
// the given post, excluding the post itself.
func (s *Service) Related(ctx context.Context, slug string, limit int) ([]models.PostMeta, error) {
	if limit <= 0 {
		limit = 3
	}
	post, err := s.Post(ctx, slug)
	if err != nil {
		return nil, err
	}
	tagSet := make(map[string]struct{}, len(post.Tags))
	for _, t := range post.Tags {
		tagSet[t] = struct{}{}
	}

	rows, err := s.db.ListPosts("", false)
	if err != nil {
		return nil, err
	}

	type scored struct {
		meta  models.PostMeta
		score int
	}
	var candidates []scored
	for _, r := range rows {
		if r.Slug == post.Slug {
			continue
		}
		score := 0
		for _, t := range r.Tags {
			if _, ok := tagSet[t]; ok {
				score++
			}
		}
		candidates = append(candidates, scored{meta: metaFromRow(r), score: score})
	}
	// ListPosts is already date-descending, so a stable sort keeps recency
	// as the tie-breaker.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := []models.PostMeta{}
	for i := 0; i < len(candidates) && i < limit; i++ {
		out = append(out, candidates[i].meta)
	}
	return out, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]blogindex.SearchResult, error) {
	return s.db.Search(query, limit)
}

func metasFromRows(rows []blogindex.PostRow) []models.PostMeta {
	out := make([]models.PostMeta, len(rows))
	for i, r := range rows {
		out[i] = metaFromRow(r)
	}
	return out
}

func metaFromRow(r blogindex.PostRow) models.PostMeta {
	return models.PostMeta{
		Slug:       r.Slug,
		Title:      r.Title,
		Date:       r.Date,
		Excerpt:    r.Excerpt,
		CoverImage: r.CoverImage,
		Author:     r.Author,
		Tags:       r.Tags,
	}
}
