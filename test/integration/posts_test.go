//go:build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/information-sharing-networks/posts-demo/internal/api"
	"github.com/information-sharing-networks/posts-demo/internal/client"
	"github.com/information-sharing-networks/posts-demo/internal/posts"
	"github.com/information-sharing-networks/posts-demo/internal/store/storetest"
)

func TestListPosts(t *testing.T) {
	testEnv := startInProcessServer(t)
	t.Cleanup(func() { cleanupPosts(t, testEnv) })

	seeded := map[string]posts.Post{}
	for range 3 {
		p := seedPost(t, testEnv)
		seeded[p.ID] = p
	}

	resp, err := testEnv.client.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Response: %s", resp.StatusCode, resp.Body)
	}

	var got []posts.Post
	if err := resp.DecodeJSON(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
	for _, p := range got {
		want, ok := seeded[p.ID]
		if !ok {
			t.Errorf("unexpected post %s in listing", p.ID)
			continue
		}
		if p.Title != want.Title || p.Content != want.Content {
			t.Errorf("post %s: got %q/%q, want %q/%q", p.ID, p.Title, p.Content, want.Title, want.Content)
		}
	}
}

func TestListPosts_Empty(t *testing.T) {
	testEnv := startInProcessServer(t)

	resp, err := testEnv.client.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "[]\n" && string(resp.Body) != "[]" {
		t.Errorf("expected an empty JSON array, got %s", resp.Body)
	}
}

func TestCreatePost(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	req := client.PostRequest{Title: storetest.Generate(t), Content: storetest.Generate(t)}

	resp, err := testEnv.client.CreatePost(ctx, req)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Response: %s", resp.StatusCode, resp.Body)
	}

	var created posts.Post
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a post id")
	}
	if created.Title != req.Title || created.Content != req.Content {
		t.Errorf("got %q/%q, want %q/%q", created.Title, created.Content, req.Title, req.Content)
	}
	if loc := resp.Header.Get("Location"); loc != "/posts/"+created.ID {
		t.Errorf("expected Location /posts/%s, got %q", created.ID, loc)
	}

	stored, err := testEnv.store.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("created post not found in store: %v", err)
	}
	if stored.Content != req.Content {
		t.Errorf("stored content %q, want %q", stored.Content, req.Content)
	}
}

func TestCreatePost_DuplicateContent(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	existing := seedPost(t, testEnv)

	resp, err := testEnv.client.CreatePost(ctx, client.PostRequest{Title: storetest.Generate(t), Content: existing.Content})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d. Response: %s", resp.StatusCode, resp.Body)
	}

	var errResp api.ErrorResponse
	if err := resp.DecodeJSON(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.StatusCode != http.StatusConflict {
		t.Errorf("expected statusCode 409 in body, got %d", errResp.StatusCode)
	}

	all, err := testEnv.store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 post after the rejected duplicate, got %d", len(all))
	}
}

// concurrent creates with the same content: exactly one wins
func TestCreatePost_ConcurrentDuplicates(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	const workers = 10
	content := storetest.Generate(t)

	statuses := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := testEnv.client.CreatePost(ctx, client.PostRequest{Title: storetest.Generate(t), Content: content})
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			statuses[i] = resp.StatusCode
		}()
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("unexpected status %d", status)
		}
	}
	if created != 1 || conflicts != workers-1 {
		t.Errorf("expected 1 created and %d conflicts, got %d and %d", workers-1, created, conflicts)
	}
}

func TestGetPost(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	seeded := seedPost(t, testEnv)

	resp, err := testEnv.client.GetPost(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("failed to get post: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var got posts.Post
	if err := resp.DecodeJSON(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != seeded.ID || got.Title != seeded.Title || got.Content != seeded.Content {
		t.Errorf("got %+v, want %+v", got, seeded)
	}

	resp, err = testEnv.client.GetPost(ctx, posts.NewID())
	if err != nil {
		t.Fatalf("failed to get post: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 for an unknown id, got %d", resp.StatusCode)
	}
}

func TestUpdatePost(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	seeded := seedPost(t, testEnv)
	update := client.PostRequest{Title: storetest.Generate(t), Content: storetest.Generate(t)}

	resp, err := testEnv.client.UpdatePost(ctx, seeded.ID, update)
	if err != nil {
		t.Fatalf("failed to update post: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d. Response: %s", resp.StatusCode, resp.Body)
	}
	if len(resp.Body) != 0 {
		t.Errorf("expected an empty body, got %s", resp.Body)
	}

	stored, err := testEnv.store.GetPost(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("failed to get post from store: %v", err)
	}
	if stored.Title != update.Title || stored.Content != update.Content {
		t.Errorf("got %q/%q, want %q/%q", stored.Title, stored.Content, update.Title, update.Content)
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{name: "numeric id on empty store", id: "1"},
		{name: "unknown uuid", id: posts.NewID()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := testEnv.client.UpdatePost(ctx, tt.id, client.PostRequest{Title: storetest.Generate(t), Content: storetest.Generate(t)})
			if err != nil {
				t.Fatalf("failed to update post: %v", err)
			}
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected status 404, got %d. Response: %s", resp.StatusCode, resp.Body)
			}
		})
	}

	_, err := testEnv.store.GetPost(ctx, "1")
	if !errors.Is(err, posts.ErrNotFound) {
		t.Errorf("expected ErrNotFound from the store, got %v", err)
	}
}

func TestUpdatePost_DuplicateContent(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	first := seedPost(t, testEnv)
	second := seedPost(t, testEnv)

	resp, err := testEnv.client.UpdatePost(ctx, second.ID, client.PostRequest{Title: storetest.Generate(t), Content: first.Content})
	if err != nil {
		t.Fatalf("failed to update post: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}

	stored, err := testEnv.store.GetPost(ctx, second.ID)
	if err != nil {
		t.Fatalf("failed to get post from store: %v", err)
	}
	if stored.Content != second.Content {
		t.Errorf("rejected update changed the post content to %q", stored.Content)
	}
}

func TestUpdatePost_MalformedBody(t *testing.T) {
	testEnv := startInProcessServer(t)

	seeded := seedPost(t, testEnv)

	resp, err := testEnv.client.UpdatePost(context.Background(), seeded.ID, []string{"not", "a", "post"})
	if err != nil {
		t.Fatalf("failed to update post: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestDeletePost(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	seeded := seedPost(t, testEnv)

	resp, err := testEnv.client.DeletePost(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d. Response: %s", resp.StatusCode, resp.Body)
	}

	all, err := testEnv.store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no posts after delete, got %d", len(all))
	}

	// deleting again is a no-op
	resp, err = testEnv.client.DeletePost(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected status 204 for a repeated delete, got %d", resp.StatusCode)
	}
}

// save a, list, delete, list
func TestPostLifecycle(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	resp, err := testEnv.client.CreatePost(ctx, client.PostRequest{Title: "a", Content: "b"})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	var created posts.Post
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var listed []posts.Post
	resp, err = testEnv.client.ListPosts(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if err := resp.DecodeJSON(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created post to be listed, got %+v", listed)
	}

	resp, err = testEnv.client.DeletePost(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to delete post: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.StatusCode)
	}

	resp, err = testEnv.client.ListPosts(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	listed = nil
	if err := resp.DecodeJSON(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected an empty listing, got %+v", listed)
	}
}

// content far larger than a postgres btree index row
func TestCreatePost_LargeContent(t *testing.T) {
	testEnv := startInProcessServer(t)
	ctx := context.Background()

	content := storetest.GenerateSize(t, 16*1024)

	resp, err := testEnv.client.CreatePost(ctx, client.PostRequest{Title: storetest.Generate(t), Content: content})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Response: %s", resp.StatusCode, resp.Body)
	}

	resp, err = testEnv.client.CreatePost(ctx, client.PostRequest{Title: storetest.Generate(t), Content: content})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate large content, got %d. Response: %s", resp.StatusCode, resp.Body)
	}
}
