package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	// ErrCategoryInUse blocks deletion of a category that images still reference.
	ErrCategoryInUse = errors.New("category has images")
)
