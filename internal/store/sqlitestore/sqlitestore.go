// Package sqlitestore is a posts.Store backed by SQLite (modernc.org/sqlite, no cgo).
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

// busy_timeout must come first so the connection blocks on busy before WAL mode is set.
const pragmas = "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

// timestamps are stored as fixed width UTC text so they sort lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore is a posts.Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the database file at path and creates the schema if needed.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. Call Init before use unless the schema already exists.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init creates the posts table if it does not exist.
func (s *SQLiteStore) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts(created_at);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create posts table: %w", err)
	}
	return nil
}

// ListPosts returns all posts ordered by creation time.
func (s *SQLiteStore) ListPosts(ctx context.Context) ([]posts.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM posts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	result := make([]posts.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

// SavePost inserts a post; the UNIQUE content column turns duplicates into posts.ErrConflict.
func (s *SQLiteStore) SavePost(ctx context.Context, title, content string) (posts.Post, error) {
	now := time.Now().UTC()
	p := posts.Post{
		ID:        posts.NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return posts.Post{}, posts.ErrConflict
		}
		return posts.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}

	// round trip through the stored representation so callers see what GetPost returns
	p.CreatedAt, _ = time.Parse(timeFormat, now.Format(timeFormat))
	p.UpdatedAt = p.CreatedAt
	return p, nil
}

// GetPost returns posts.ErrNotFound for unknown or malformed ids.
func (s *SQLiteStore) GetPost(ctx context.Context, id string) (posts.Post, error) {
	key, err := posts.ParseID(id)
	if err != nil {
		return posts.Post{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM posts WHERE id = ?`, key.String())
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.Post{}, posts.ErrNotFound
	}
	return p, err
}

// UpdatePost replaces the title and content of an existing post.
func (s *SQLiteStore) UpdatePost(ctx context.Context, id, title, content string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, time.Now().UTC().Format(timeFormat), key.String())
	if err != nil {
		if isUniqueViolation(err) {
			return posts.ErrConflict
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if n == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// DeletePost removes the post if it exists.
func (s *SQLiteStore) DeletePost(ctx context.Context, id string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, key.String()); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (posts.Post, error) {
	var (
		p                    posts.Post
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return posts.Post{}, err
		}
		return posts.Post{}, fmt.Errorf("failed to scan post: %w", err)
	}

	var err error
	if p.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return posts.Post{}, fmt.Errorf("invalid created_at for post %s: %w", p.ID, err)
	}
	if p.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return posts.Post{}, fmt.Errorf("invalid updated_at for post %s: %w", p.ID, err)
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
