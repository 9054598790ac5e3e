//go:build integration

// functions that are useful in integration tests

package integration

import (
	"context"
	"testing"

	"github.com/information-sharing-networks/posts-demo/internal/posts"
	"github.com/information-sharing-networks/posts-demo/internal/store/storetest"
)

// seedPost saves a post directly through the store, bypassing the API
func seedPost(t *testing.T, testEnv *testEnv) posts.Post {
	t.Helper()

	post, err := testEnv.store.SavePost(context.Background(), storetest.Generate(t), storetest.Generate(t))
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

// cleanupPosts deletes every post in the store
func cleanupPosts(t *testing.T, testEnv *testEnv) {
	t.Helper()
	ctx := context.Background()

	all, err := testEnv.store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	for _, p := range all {
		if err := testEnv.store.DeletePost(ctx, p.ID); err != nil {
			t.Fatalf("failed to delete post %s: %v", p.ID, err)
		}
	}
}
