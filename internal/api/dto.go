package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/giralt/sitecms/internal/models"
)

// CreateImageRequest is the request body for creating a gallery image.
type CreateImageRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

// Validate validates the create-image request.
func (r CreateImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Image, validation.Required),
	)
}

// UpdateImageRequest is the request body for updating a gallery image.
// Absent fields are left untouched; id and createdAt are immutable.
type UpdateImageRequest struct {
	Category *string `json:"category,omitempty"`
	Title    *string `json:"title,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// Validate rejects explicit empty strings for fields that are present.
func (r UpdateImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.NilOrNotEmpty),
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Image, validation.NilOrNotEmpty),
	)
}

// ImageResponse wraps a mutated image together with the remote commit
// outcome, so the admin UI can warn "saved locally but not yet committed".
type ImageResponse struct {
	Image         models.Image `json:"image"`
	CommitSuccess bool         `json:"commitSuccess"`
}

// DeleteResponse reports a completed deletion and its commit outcome.
type DeleteResponse struct {
	Success       bool `json:"success"`
	CommitSuccess bool `json:"commitSuccess"`
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Validate validates the create-category request.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Label, validation.Required),
	)
}

// UpdateCategoryRequest is the request body for renaming a category.
type UpdateCategoryRequest struct {
	Label string `json:"label"`
}

// Validate validates the update-category request.
func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required),
	)
}

// CategoryResponse wraps a mutated category with the remote commit outcome.
type CategoryResponse struct {
	Category      models.Category `json:"category"`
	CommitSuccess bool            `json:"commitSuccess"`
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Password string `json:"password"`
}

// Validate validates the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
	Message     string `json:"message"`
}

// Validate validates the contact request.
func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Message, validation.Required),
	)
}

// UploadResponse is returned after a successful asset upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
