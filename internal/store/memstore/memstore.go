// Package memstore is an in-memory posts.Store used for development and tests.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

// MemStore keeps posts in a map guarded by a RWMutex.
// The content index is only changed under the write lock so the uniqueness check and the insert are atomic.
type MemStore struct {
	mu        sync.RWMutex
	posts     map[string]posts.Post
	byContent map[string]string
	now       func() time.Time
}

// New returns an empty store.
func New() *MemStore {
	return &MemStore{
		posts:     make(map[string]posts.Post),
		byContent: make(map[string]string),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListPosts returns all posts ordered by creation time.
func (s *MemStore) ListPosts(ctx context.Context) ([]posts.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]posts.Post, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b posts.Post) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// SavePost stores a new post, or returns posts.ErrConflict if another post has the same content.
func (s *MemStore) SavePost(ctx context.Context, title, content string) (posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byContent[content]; ok {
		return posts.Post{}, posts.ErrConflict
	}

	now := s.now()
	p := posts.Post{
		ID:        posts.NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[p.ID] = p
	s.byContent[content] = p.ID
	return p, nil
}

// GetPost returns posts.ErrNotFound for unknown or malformed ids.
func (s *MemStore) GetPost(ctx context.Context, id string) (posts.Post, error) {
	key, err := posts.ParseID(id)
	if err != nil {
		return posts.Post{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[key.String()]
	if !ok {
		return posts.Post{}, posts.ErrNotFound
	}
	return p, nil
}

// UpdatePost replaces the title and content of an existing post.
func (s *MemStore) UpdatePost(ctx context.Context, id, title, content string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[key.String()]
	if !ok {
		return posts.ErrNotFound
	}
	if owner, ok := s.byContent[content]; ok && owner != p.ID {
		return posts.ErrConflict
	}

	delete(s.byContent, p.Content)
	p.Title = title
	p.Content = content
	p.UpdatedAt = s.now()
	s.posts[p.ID] = p
	s.byContent[content] = p.ID
	return nil
}

// DeletePost removes the post if it exists.
func (s *MemStore) DeletePost(ctx context.Context, id string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.posts[key.String()]; ok {
		delete(s.byContent, p.Content)
		delete(s.posts, p.ID)
	}
	return nil
}

// Ping always succeeds.
func (s *MemStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *MemStore) Close() error { return nil }
