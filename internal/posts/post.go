package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog post.
type Post struct {
	ID        string    `json:"id" example:"0b6f0c43-5a4c-4a8b-9a44-3c3e4b6b5a10"`
	Title     string    `json:"title" example:"Hello"`
	Content   string    `json:"content" example:"First post"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-28T10:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-01-28T10:00:00Z"`
}

// NewID returns a new post id.
func NewID() string {
	return uuid.NewString()
}

// ParseID normalises a post id.
// Ids that are not UUIDs can never belong to a stored post so they are reported as ErrNotFound.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return parsed, nil
}
