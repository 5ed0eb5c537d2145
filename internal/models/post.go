package models

// Post represents a blog article parsed from a Markdown file with YAML
// frontmatter. Content is the raw Markdown body; rendering happens
// client-side.
type Post struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Date       string   `json:"date,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CoverImage string   `json:"coverImage,omitempty"`
	Author     string   `json:"author,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Published  bool     `json:"published"`
	Content    string   `json:"content,omitempty"`
}

// PostMeta is a lightweight representation returned by list operations.
type PostMeta struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Date       string   `json:"date,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CoverImage string   `json:"coverImage,omitempty"`
	Author     string   `json:"author,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}
