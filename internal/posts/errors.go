package posts

import "errors"

var (
	// ErrNotFound is returned when no post has the requested id.
	ErrNotFound = errors.New("post not found")

	// ErrConflict is returned when another post already has the same content.
	ErrConflict = errors.New("post with the same content already exists")
)
