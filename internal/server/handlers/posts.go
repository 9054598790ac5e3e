package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/information-sharing-networks/posts-demo/internal/api"
	"github.com/information-sharing-networks/posts-demo/internal/logger"
	"github.com/information-sharing-networks/posts-demo/internal/posts"
)

// PostRequest is the body of create and update requests.
// Unknown fields (e.g. an id echoed back by the client) are ignored.
type PostRequest struct {
	Title   string `json:"title" example:"Hello"`
	Content string `json:"content" example:"First post"`
}

// HandleListPosts godoc
//
//	@Summary	List posts
//	@Tags		Posts
//	@Produce	json
//	@Success	200	{array}	posts.Post
//	@Router		/posts [get]
func HandleListPosts(store posts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListPosts(r.Context())
		if err != nil {
			api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "failed to list posts"))
			return
		}

		api.RespondWithJSONPayload(w, http.StatusOK, list)
	}
}

// HandleCreatePost godoc
//
//	@Summary	Create a post
//	@Tags		Posts
//	@Accept		json
//	@Produce	json
//	@Param		post	body		PostRequest	true	"Post details"
//	@Success	201		{object}	posts.Post
//	@Failure	400		{object}	api.ErrorResponse	"Invalid request body"
//	@Failure	409		{object}	api.ErrorResponse	"A post with the same content already exists"
//	@Router		/posts [post]
func HandleCreatePost(store posts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.ContextRequestLogger(r.Context())

		req, err := decodePostRequest(r)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		post, err := store.SavePost(r.Context(), req.Title, req.Content)
		if err != nil {
			api.RespondWithErrorResponse(w, r, storeError(err, "failed to save post"))
			return
		}

		reqLogger.Debug("post created", slog.String("post_id", post.ID))
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", post.ID))

		w.Header().Set("Location", "/posts/"+post.ID)
		api.RespondWithJSONPayload(w, http.StatusCreated, post)
	}
}

// HandleGetPost godoc
//
//	@Summary	Get a post by id
//	@Tags		Posts
//	@Produce	json
//	@Param		postID	path		string	true	"Post ID"
//	@Success	200		{object}	posts.Post
//	@Failure	404		{object}	api.ErrorResponse	"Post not found"
//	@Router		/posts/{postID} [get]
func HandleGetPost(store posts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := store.GetPost(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			api.RespondWithErrorResponse(w, r, storeError(err, "failed to get post"))
			return
		}

		api.RespondWithJSONPayload(w, http.StatusOK, post)
	}
}

// HandleUpdatePost godoc
//
//	@Summary		Replace the title and content of a post
//	@Description	Both fields are replaced, a missing field is stored as an empty string.
//	@Tags			Posts
//	@Accept			json
//	@Param			postID	path	string		true	"Post ID"
//	@Param			post	body	PostRequest	true	"Post details"
//	@Success		204
//	@Failure		400	{object}	api.ErrorResponse	"Invalid request body"
//	@Failure		404	{object}	api.ErrorResponse	"Post not found"
//	@Failure		409	{object}	api.ErrorResponse	"Another post has the same content"
//	@Router			/posts/{postID} [put]
func HandleUpdatePost(store posts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", postID))

		req, err := decodePostRequest(r)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		if err := store.UpdatePost(r.Context(), postID, req.Title, req.Content); err != nil {
			api.RespondWithErrorResponse(w, r, storeError(err, "failed to update post"))
			return
		}

		api.RespondWithStatusCodeOnly(w, http.StatusNoContent)
	}
}

// HandleDeletePost godoc
//
//	@Summary		Delete a post
//	@Description	Deleting a post that does not exist also returns 204.
//	@Tags			Posts
//	@Param			postID	path	string	true	"Post ID"
//	@Success		204
//	@Router			/posts/{postID} [delete]
func HandleDeletePost(store posts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", postID))

		if err := store.DeletePost(r.Context(), postID); err != nil {
			api.RespondWithErrorResponse(w, r, storeError(err, "failed to delete post"))
			return
		}

		api.RespondWithStatusCodeOnly(w, http.StatusNoContent)
	}
}

func decodePostRequest(r *http.Request) (PostRequest, error) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, api.NewRequestTooLargeError("Request body exceeds maximum allowed size")
		}
		return req, api.WrapMalformedRequestError(err, "Invalid request body")
	}
	return req, nil
}

// storeError turns the posts sentinel errors into 404/409 API errors and wraps anything else as internal
func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, posts.ErrNotFound):
		return api.NewNotFoundError(err.Error())
	case errors.Is(err, posts.ErrConflict):
		return api.NewConflictError(err.Error())
	}
	return api.WrapInternalError(err, msg)
}
