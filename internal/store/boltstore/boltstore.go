// Package boltstore is a posts.Store backed by a single bbolt file.
package boltstore

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.etcd.io/bbolt"

	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

const (
	bucketPosts   = "posts"
	bucketContent = "post_content"
)

// BoltStore keeps posts as JSON in the posts bucket keyed by id.
// The post_content bucket maps sha256(content) to the owning id; it is read and written in the same
// write transaction as the post so the uniqueness check cannot race with another writer.
type BoltStore struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// Open opens (or creates) the bolt file at path and makes sure the buckets exist.
func Open(path string, logger *slog.Logger) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketPosts)); err != nil {
			return fmt.Errorf("failed to create posts bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketContent)); err != nil {
			return fmt.Errorf("failed to create content bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	logger.Debug("bbolt store opened", slog.String("path", path))

	return &BoltStore{db: db, logger: logger}, nil
}

// contentKey is the sha256 of the content, so index keys stay small whatever the content size.
func contentKey(content string) []byte {
	sum := sha256.Sum256([]byte(content))
	return sum[:]
}

// ListPosts returns all posts ordered by creation time.
func (s *BoltStore) ListPosts(ctx context.Context) ([]posts.Post, error) {
	result := make([]posts.Post, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketPosts)).ForEach(func(k, v []byte) error {
			var p posts.Post
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("failed to decode post %s: %w", k, err)
			}
			result = append(result, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b posts.Post) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// SavePost stores the post and its content index entry in one write transaction.
func (s *BoltStore) SavePost(ctx context.Context, title, content string) (posts.Post, error) {
	now := time.Now().UTC()
	p := posts.Post{
		ID:        posts.NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket([]byte(bucketContent))
		if index.Get(contentKey(content)) != nil {
			return posts.ErrConflict
		}
		if err := putPost(tx, p); err != nil {
			return err
		}
		return index.Put(contentKey(content), []byte(p.ID))
	})
	if err != nil {
		return posts.Post{}, err
	}
	return p, nil
}

// GetPost returns posts.ErrNotFound for unknown or malformed ids.
func (s *BoltStore) GetPost(ctx context.Context, id string) (posts.Post, error) {
	key, err := posts.ParseID(id)
	if err != nil {
		return posts.Post{}, err
	}

	var p posts.Post
	err = s.db.View(func(tx *bbolt.Tx) error {
		found, err := getPost(tx, key.String())
		if err != nil {
			return err
		}
		p = found
		return nil
	})
	return p, err
}

// UpdatePost replaces the title and content of an existing post.
func (s *BoltStore) UpdatePost(ctx context.Context, id, title, content string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		p, err := getPost(tx, key.String())
		if err != nil {
			return err
		}

		index := tx.Bucket([]byte(bucketContent))
		if owner := index.Get(contentKey(content)); owner != nil && !bytes.Equal(owner, []byte(p.ID)) {
			return posts.ErrConflict
		}
		if err := index.Delete(contentKey(p.Content)); err != nil {
			return err
		}

		p.Title = title
		p.Content = content
		p.UpdatedAt = time.Now().UTC()
		if err := putPost(tx, p); err != nil {
			return err
		}
		return index.Put(contentKey(content), []byte(p.ID))
	})
}

// DeletePost removes the post and its index entry if it exists.
func (s *BoltStore) DeletePost(ctx context.Context, id string) error {
	key, err := posts.ParseID(id)
	if err != nil {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		p, err := getPost(tx, key.String())
		if errors.Is(err, posts.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketContent)).Delete(contentKey(p.Content)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketPosts)).Delete([]byte(p.ID))
	})
}

// Ping checks the buckets can be read.
func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(bucketPosts)) == nil {
			return fmt.Errorf("bucket %s not found", bucketPosts)
		}
		return nil
	})
}

// Close closes the bolt file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func getPost(tx *bbolt.Tx, id string) (posts.Post, error) {
	v := tx.Bucket([]byte(bucketPosts)).Get([]byte(id))
	if v == nil {
		return posts.Post{}, posts.ErrNotFound
	}
	var p posts.Post
	if err := json.Unmarshal(v, &p); err != nil {
		return posts.Post{}, fmt.Errorf("failed to decode post %s: %w", id, err)
	}
	return p, nil
}

func putPost(tx *bbolt.Tx, p posts.Post) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode post: %w", err)
	}
	return tx.Bucket([]byte(bucketPosts)).Put([]byte(p.ID), data)
}
