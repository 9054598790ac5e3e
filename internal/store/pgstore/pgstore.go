// Package pgstore is the PostgreSQL posts.Store.
//
// Queries are generated by sqlc into internal/database (see sql/queries/posts.sql) and the schema
// is managed with goose migrations in sql/schema. Content uniqueness is enforced by the
// posts_content_key unique index (on the sha256 of the content) so concurrent saves are serialised by the database.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/information-sharing-networks/posts-demo/internal/database"
	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

// pgUniqueViolation is the postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// PGStore is a posts.Store backed by PostgreSQL.
type PGStore struct {
	pool    *pgxpool.Pool
	queries *database.Queries
}

// New returns a store using pool. The schema must already be migrated (see Migrate).
func New(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool:    pool,
		queries: database.New(pool),
	}
}

// ListPosts returns all posts ordered by creation time.
func (s *PGStore) ListPosts(ctx context.Context) ([]posts.Post, error) {
	rows, err := s.queries.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := make([]posts.Post, 0, len(rows))
	for _, row := range rows {
		result = append(result, postFromRow(row))
	}
	return result, nil
}

// SavePost inserts a post and maps unique violations to posts.ErrConflict.
func (s *PGStore) SavePost(ctx context.Context, title, content string) (posts.Post, error) {
	row, err := s.queries.CreatePost(ctx, database.CreatePostParams{
		Title:   title,
		Content: content,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return posts.Post{}, posts.ErrConflict
		}
		return posts.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return postFromRow(row), nil
}

// GetPost returns posts.ErrNotFound for unknown or malformed ids.
func (s *PGStore) GetPost(ctx context.Context, id string) (posts.Post, error) {
	postID, err := posts.ParseID(id)
	if err != nil {
		return posts.Post{}, err
	}

	row, err := s.queries.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posts.Post{}, posts.ErrNotFound
		}
		return posts.Post{}, fmt.Errorf("failed to get post: %w", err)
	}
	return postFromRow(row), nil
}

// UpdatePost replaces the title and content of an existing post.
func (s *PGStore) UpdatePost(ctx context.Context, id, title, content string) error {
	postID, err := posts.ParseID(id)
	if err != nil {
		return err
	}

	n, err := s.queries.UpdatePost(ctx, database.UpdatePostParams{
		ID:      postID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return posts.ErrConflict
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	if n == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// DeletePost removes the post if it exists.
func (s *PGStore) DeletePost(ctx context.Context, id string) error {
	postID, err := posts.ParseID(id)
	if err != nil {
		return nil
	}

	if err := s.queries.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Ping checks the database is reachable and answering queries.
func (s *PGStore) Ping(ctx context.Context) error {
	_, err := s.queries.IsDatabaseRunning(ctx)
	return err
}

// Close closes the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

// Pool exposes the connection pool (used by migrations and test cleanup).
func (s *PGStore) Pool() *pgxpool.Pool {
	return s.pool
}

func postFromRow(row database.Post) posts.Post {
	return posts.Post{
		ID:        row.ID.String(),
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
