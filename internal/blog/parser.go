// Package blog reads Markdown posts with YAML frontmatter from the content
// directory and serves listing, tag, and related-post queries backed by the
// blog index.
package blog

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/giralt/sitecms/internal/models"
)

// frontmatter mirrors the YAML header of a post file. A missing "published"
// key defaults to true so plain posts go live without boilerplate.
type frontmatter struct {
	Title      string    `yaml:"title"`
	Slug       string    `yaml:"slug"`
	Date       yaml.Node `yaml:"date"`
	Excerpt    string    `yaml:"excerpt"`
	CoverImage string    `yaml:"coverImage"`
	Author     string    `yaml:"author"`
	Tags       []string  `yaml:"tags"`
	Published  *bool     `yaml:"published"`
}

// ParsePost parses raw Markdown bytes into a Post. slug is the filename
// stem and is used unless the frontmatter overrides it.
func ParsePost(slug string, data []byte) (*models.Post, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("blog: parse %s: %w", slug, err)
	}

	post := &models.Post{
		Slug:       slug,
		Title:      fm.Title,
		Date:       normalizeDate(fm.Date),
		Excerpt:    fm.Excerpt,
		CoverImage: fm.CoverImage,
		Author:     fm.Author,
		Tags:       fm.Tags,
		Published:  fm.Published == nil || *fm.Published,
		Content:    body,
	}
	if fm.Slug != "" {
		post.Slug = fm.Slug
	}
	if post.Title == "" {
		post.Title = firstHeading(body)
	}
	if post.Excerpt == "" {
		post.Excerpt = firstParagraph(body)
	}
	return post, nil
}

// splitFrontmatter separates the YAML block (between leading --- delimiters)
// from the Markdown body. Content without frontmatter is all body.
func splitFrontmatter(data []byte) (frontmatter, string, error) {
	const delim = "---"
	var fm frontmatter

	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return fm, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter; treat everything as body.
		return fm, string(data), nil
	}

	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return frontmatter{}, "", err
	}
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")
	return fm, body, nil
}

// normalizeDate renders the frontmatter date as YYYY-MM-DD. YAML authors
// write dates both as bare scalars (parsed as timestamps) and as strings.
func normalizeDate(node yaml.Node) string {
	if node.IsZero() {
		return ""
	}
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// firstParagraph returns the first non-heading text block, truncated at a
// word boundary.
func firstParagraph(body string) string {
	const maxLen = 200
	for _, block := range strings.Split(body, "\n\n") {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
			continue
		}
		flat := strings.Join(strings.Fields(trimmed), " ")
		if len(flat) <= maxLen {
			return flat
		}
		cut := strings.LastIndex(flat[:maxLen], " ")
		if cut <= 0 {
			cut = maxLen
		}
		return flat[:cut] + "..."
	}
	return ""
}
