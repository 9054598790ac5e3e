package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoReturnsNon2xxResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"statusCode":409}`))
		case http.MethodPut:
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c := New(ts.URL)
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() (*Response, error)
		wantCode int
	}{
		{"conflict", func() (*Response, error) { return c.CreatePost(ctx, PostRequest{Title: "a", Content: "b"}) }, http.StatusConflict},
		{"not found", func() (*Response, error) { return c.UpdatePost(ctx, "1", map[string]int{"id": 1}) }, http.StatusNotFound},
		{"server error", func() (*Response, error) { return c.ListPosts(ctx) }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != tt.wantCode {
				t.Errorf("got status %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if resp.IsSuccess() {
				t.Error("IsSuccess should be false")
			}
		})
	}
}

func TestDoSendsJSON(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotBody        PostRequest
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc","title":"t","content":"c"}`))
	}))
	defer ts.Close()

	resp, err := New(ts.URL+"/").CreatePost(context.Background(), PostRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/posts" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("got Content-Type %q", gotContentType)
	}
	if gotBody.Title != "t" || gotBody.Content != "c" {
		t.Errorf("server received %+v", gotBody)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if created.ID != "abc" {
		t.Errorf("got id %q", created.ID)
	}
}

func TestDoTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := New(url, WithTimeout(time.Second)).DeletePost(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected an error when the server is unreachable")
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	resp := &Response{StatusCode: http.StatusNoContent}
	var v map[string]any
	if err := resp.DecodeJSON(&v); err == nil {
		t.Error("expected an error for an empty body")
	}
}
