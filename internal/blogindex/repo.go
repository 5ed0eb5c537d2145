package blogindex

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/giralt/sitecms/internal/apperr"
)

// PostRow represents a row in the posts table.
type PostRow struct {
	Path       string
	Slug       string
	Title      string
	Date       string
	Excerpt    string
	CoverImage string
	Author     string
	Tags       []string
	Published  bool
	Checksum   string
}

// SearchResult represents one search hit.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// UpsertPost inserts or replaces a post and its FTS entry in a transaction.
func (db *DB) UpsertPost(row PostRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("blogindex: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(row.Tags)

	// A renamed slug must not collide with the stale row of its own path.
	_, _ = tx.Exec(`DELETE FROM posts WHERE slug = ? AND path != ?`, row.Slug, row.Path)

	_, err = tx.Exec(`
		INSERT INTO posts (path, slug, title, date, excerpt, cover_image, author, tags, published, body, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			slug        = excluded.slug,
			title       = excluded.title,
			date        = excluded.date,
			excerpt     = excluded.excerpt,
			cover_image = excluded.cover_image,
			author      = excluded.author,
			tags        = excluded.tags,
			published   = excluded.published,
			body        = excluded.body,
			checksum    = excluded.checksum
	`, row.Path, row.Slug, row.Title, row.Date, row.Excerpt, row.CoverImage, row.Author,
		string(tagsJSON), boolToInt(row.Published), body, row.Checksum)
	if err != nil {
		return fmt.Errorf("blogindex: upsert post: %w", err)
	}

	if err := ftsUpsert(tx, row.Path, row.Slug, row.Title, body, row.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePost removes a post and its FTS entry.
func (db *DB) DeletePost(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("blogindex: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM posts WHERE path = ?`, path)

	return tx.Commit()
}

// PathBySlug returns the content path of the post with the given slug.
func (db *DB) PathBySlug(slug string) (string, error) {
	var path string
	err := db.conn.QueryRow(`SELECT path FROM posts WHERE slug = ?`, slug).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("blogindex: path by slug: %w", err)
	}
	return path, nil
}

// ListPosts returns post metadata sorted by date descending, optionally
// filtered by tag. Drafts are excluded unless includeDrafts is set.
func (db *DB) ListPosts(tag string, includeDrafts bool) ([]PostRow, error) {
	q := `SELECT path, slug, title, date, excerpt, cover_image, author, tags, published, checksum
		FROM posts`
	var args []any
	var conds []string
	if !includeDrafts {
		conds = append(conds, `published = 1`)
	}
	if tag != "" {
		// Tags are stored as a JSON array of strings.
		conds = append(conds, `tags LIKE ?`)
		args = append(args, `%"`+tag+`"%`)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY date DESC, slug ASC`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("blogindex: list posts: %w", err)
	}
	defer rows.Close()

	var out []PostRow
	for rows.Next() {
		var r PostRow
		var tagsJSON string
		var published int
		if err := rows.Scan(&r.Path, &r.Slug, &r.Title, &r.Date, &r.Excerpt, &r.CoverImage,
			&r.Author, &tagsJSON, &published, &r.Checksum); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		r.Published = published != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Tags returns the distinct tag set across published posts.
func (db *DB) Tags() ([]string, error) {
	rows, err := db.conn.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, fmt.Errorf("blogindex: tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var out []string
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, err
		}
		var tags []string
		_ = json.Unmarshal([]byte(tagsJSON), &tags)
		for _, t := range tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed post.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("blogindex: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
