package posts

import "context"

// Store is the persistence API for posts.
type Store interface {
	// ListPosts returns every post ordered by creation time.
	// An empty store returns an empty, non-nil slice.
	ListPosts(ctx context.Context) ([]Post, error)

	// SavePost creates a post with a new id.
	// Returns ErrConflict when content is already used by another post.
	SavePost(ctx context.Context, title, content string) (Post, error)

	// GetPost returns ErrNotFound when id is unknown.
	GetPost(ctx context.Context, id string) (Post, error)

	// UpdatePost replaces title and content of an existing post.
	// Returns ErrNotFound when id is unknown and ErrConflict when content belongs to another post.
	UpdatePost(ctx context.Context, id, title, content string) error

	// DeletePost removes the post. Unknown ids are ignored.
	DeletePost(ctx context.Context, id string) error
}
