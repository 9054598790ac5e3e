// Package storetest contains the behaviour every posts.Store backend must share.
// Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

// Factory returns an empty store. Implementations register their own cleanup with t.Cleanup.
type Factory func(t *testing.T) posts.Store

// Generate returns a random hex string for titles and content.
func Generate(t *testing.T) string {
	t.Helper()
	return GenerateSize(t, 20)
}

// GenerateSize returns the hex encoding of n random bytes (2n characters).
func GenerateSize(t *testing.T, n int) string {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("failed to generate random bytes: %v", err)
	}
	return hex.EncodeToString(b)
}

// Run runs the shared store tests against the store returned by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("empty list", func(t *testing.T) {
		store := newStore(t)

		list, err := store.ListPosts(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("save and get", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		title, content := Generate(t), Generate(t)

		saved, err := store.SavePost(ctx, title, content)
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, title, saved.Title)
		assert.Equal(t, content, saved.Content)
		assert.False(t, saved.CreatedAt.IsZero())

		got, err := store.GetPost(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, content, got.Content)
	})

	t.Run("ids are unique", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		ids := make(map[string]bool)
		for range 5 {
			p, err := store.SavePost(ctx, Generate(t), Generate(t))
			require.NoError(t, err)
			assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
			ids[p.ID] = true
		}
	})

	t.Run("duplicate content conflicts", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		content := Generate(t)

		_, err := store.SavePost(ctx, Generate(t), content)
		require.NoError(t, err)

		_, err = store.SavePost(ctx, Generate(t), content)
		assert.ErrorIs(t, err, posts.ErrConflict)

		list, err := store.ListPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("large content", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		content := GenerateSize(t, 16*1024)

		saved, err := store.SavePost(ctx, Generate(t), content)
		require.NoError(t, err)

		got, err := store.GetPost(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, content, got.Content)

		_, err = store.SavePost(ctx, Generate(t), content)
		assert.ErrorIs(t, err, posts.ErrConflict)

		other, err := store.SavePost(ctx, Generate(t), GenerateSize(t, 16*1024))
		require.NoError(t, err)
		err = store.UpdatePost(ctx, other.ID, Generate(t), content)
		assert.ErrorIs(t, err, posts.ErrConflict)
	})

	t.Run("multi-byte content", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		title := "Grüße 日本語 " + Generate(t)
		content := "naïve café ✓ 🚀 " + Generate(t)

		saved, err := store.SavePost(ctx, title, content)
		require.NoError(t, err)

		got, err := store.GetPost(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, content, got.Content)

		_, err = store.SavePost(ctx, Generate(t), content)
		assert.ErrorIs(t, err, posts.ErrConflict)

		// same text in a different normalisation is different content
		_, err = store.SavePost(ctx, Generate(t), "nai\u0308ve cafe\u0301 ✓ 🚀 "+content[len("naïve café ✓ 🚀 "):])
		assert.NoError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		saved, err := store.SavePost(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, saved.Title)
		assert.Empty(t, saved.Content)

		_, err = store.SavePost(ctx, Generate(t), "")
		assert.ErrorIs(t, err, posts.ErrConflict)

		other, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)
		err = store.UpdatePost(ctx, other.ID, Generate(t), "")
		assert.ErrorIs(t, err, posts.ErrConflict)
	})

	t.Run("duplicate title is allowed", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		title := Generate(t)

		_, err := store.SavePost(ctx, title, Generate(t))
		require.NoError(t, err)
		_, err = store.SavePost(ctx, title, Generate(t))
		assert.NoError(t, err)
	})

	t.Run("concurrent duplicate saves", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		content := Generate(t)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.SavePost(ctx, "title", content)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case assert.ErrorIs(t, err, posts.ErrConflict):
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicts)
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetPost(context.Background(), posts.NewID())
		assert.ErrorIs(t, err, posts.ErrNotFound)

		_, err = store.GetPost(context.Background(), "1")
		assert.ErrorIs(t, err, posts.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		saved, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)

		title, content := Generate(t), Generate(t)
		require.NoError(t, store.UpdatePost(ctx, saved.ID, title, content))

		got, err := store.GetPost(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, content, got.Content)
		assert.False(t, got.UpdatedAt.Before(saved.UpdatedAt))
	})

	t.Run("update keeping own content", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		saved, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)

		assert.NoError(t, store.UpdatePost(ctx, saved.ID, Generate(t), saved.Content))
	})

	t.Run("update to content of another post", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		first, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)
		second, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)

		err = store.UpdatePost(ctx, second.ID, Generate(t), first.Content)
		assert.ErrorIs(t, err, posts.ErrConflict)

		got, err := store.GetPost(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, second.Content, got.Content)
	})

	t.Run("update unknown id", func(t *testing.T) {
		store := newStore(t)

		err := store.UpdatePost(context.Background(), posts.NewID(), Generate(t), Generate(t))
		assert.ErrorIs(t, err, posts.ErrNotFound)

		err = store.UpdatePost(context.Background(), "1", "", "")
		assert.ErrorIs(t, err, posts.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		keep, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)
		gone, err := store.SavePost(ctx, Generate(t), Generate(t))
		require.NoError(t, err)

		require.NoError(t, store.DeletePost(ctx, gone.ID))

		_, err = store.GetPost(ctx, gone.ID)
		assert.ErrorIs(t, err, posts.ErrNotFound)

		list, err := store.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})

	t.Run("deleted content can be reused", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		content := Generate(t)

		p, err := store.SavePost(ctx, Generate(t), content)
		require.NoError(t, err)
		require.NoError(t, store.DeletePost(ctx, p.ID))

		_, err = store.SavePost(ctx, Generate(t), content)
		assert.NoError(t, err)
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		store := newStore(t)

		assert.NoError(t, store.DeletePost(context.Background(), posts.NewID()))
		assert.NoError(t, store.DeletePost(context.Background(), "1"))
	})

	t.Run("list after saves and deletes", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		var saved []posts.Post
		for range 5 {
			p, err := store.SavePost(ctx, Generate(t), Generate(t))
			require.NoError(t, err)
			saved = append(saved, p)
		}
		require.NoError(t, store.DeletePost(ctx, saved[1].ID))
		require.NoError(t, store.DeletePost(ctx, saved[3].ID))

		list, err := store.ListPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)

		got := make(map[string]bool)
		for _, p := range list {
			got[p.ID] = true
		}
		assert.True(t, got[saved[0].ID])
		assert.True(t, got[saved[2].ID])
		assert.True(t, got[saved[4].ID])
	})
}
