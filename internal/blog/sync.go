package blog

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/giralt/sitecms/internal/blogindex"
	"github.com/giralt/sitecms/internal/checksum"
	"github.com/giralt/sitecms/internal/storage"
)

// Sync walks the content directory and brings the index up to date:
//   - new and changed posts are parsed and upserted
//   - posts removed from disk are deleted from the index
func Sync(db *blogindex.DB, store storage.Provider, logger *slog.Logger) error {
	files, err := store.List("", ".md", ".mdx")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(files))
	for _, f := range files {
		disk[f.Path] = struct{}{}

		if checksums[f.Path] == f.Checksum {
			continue
		}

		data, err := store.Read(f.Path)
		if err != nil {
			logger.Warn("blog sync: read failed", slog.String("path", f.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexPost(db, f.Path, data); err != nil {
			logger.Warn("blog sync: index failed", slog.String("path", f.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("blog sync: indexed", slog.String("path", f.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeletePost(p); err != nil {
				logger.Warn("blog sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("blog sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexPost parses data and upserts it into the index.
func indexPost(db *blogindex.DB, path string, data []byte) error {
	post, err := ParsePost(slugFromPath(path), data)
	if err != nil {
		return err
	}
	return db.UpsertPost(blogindex.PostRow{
		Path:       path,
		Slug:       post.Slug,
		Title:      post.Title,
		Date:       post.Date,
		Excerpt:    post.Excerpt,
		CoverImage: post.CoverImage,
		Author:     post.Author,
		Tags:       post.Tags,
		Published:  post.Published,
		Checksum:   checksum.Sum(data),
	}, post.Content)
}

// slugFromPath returns the filename stem: "2024/pier-guide.mdx" → "pier-guide".
func slugFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".mdx")
	return strings.TrimSuffix(base, ".md")
}

func isPostFile(path string) bool {
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".mdx")
}
