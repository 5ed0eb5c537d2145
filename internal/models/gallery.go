// Package models defines the domain types for sitecms.
package models

// Category is a gallery grouping. The id doubles as the slug shown in
// gallery filter URLs and as the foreign key used by Image.Category.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Image is a single gallery entry. Timestamps are ISO-8601 strings with
// millisecond precision ("2024-01-01T00:00:00.000Z") so that serialized
// documents stay byte-identical with the canonical data file.
type Image struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// GalleryDocument is the single persisted aggregate: categories and images
// in display order.
type GalleryDocument struct {
	Categories []Category `json:"categories"`
	Images     []Image    `json:"images"`
}

// Normalize replaces nil slices with empty ones so the document always
// serializes arrays, never null.
func (d *GalleryDocument) Normalize() {
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if d.Images == nil {
		d.Images = []Image{}
	}
}

// Clone returns a deep copy of the document. Store consumers get copies so
// concurrent handlers never share backing arrays.
func (d *GalleryDocument) Clone() *GalleryDocument {
	out := &GalleryDocument{
		Categories: make([]Category, len(d.Categories)),
		Images:     make([]Image, len(d.Images)),
	}
	copy(out.Categories, d.Categories)
	copy(out.Images, d.Images)
	return out
}
