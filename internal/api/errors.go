package api

// errors.go defines the error codes used by the posts API

import "fmt"

// APIError represents a structured error returned by the posts API.
type APIError struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *APIError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *APIError) Code() ErrorCode { return e.code }
func (e *APIError) Unwrap() error   { return e.wrapped }

// ErrorCode is used in error responses.
//
//   - 7000-7999 technical errors: the request could not be processed (bad JSON, limits, server faults)
//   - 8000-8999 functional errors: the request was valid but the post rules prevent it
type ErrorCode int

const (
	// ErrCodeMalformedRequest is used when the request body is not valid JSON
	ErrCodeMalformedRequest ErrorCode = 7001

	// ErrCodeInternalError is used when an unexpected server side error occurs
	ErrCodeInternalError ErrorCode = 7002

	// ErrCodeRateLimitExceeded is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = 7003

	// ErrCodeRequestTooLarge is only used in the middleware
	ErrCodeRequestTooLarge ErrorCode = 7004

	// ErrCodeNotFound is used when no post has the requested id
	ErrCodeNotFound ErrorCode = 8001

	// ErrCodeConflict is used when another post already has the same content
	ErrCodeConflict ErrorCode = 8002
)

// NewMalformedRequestError creates an error for malformed requests.
func NewMalformedRequestError(msg string) error {
	return &APIError{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps an existing error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &APIError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// WrapInternalError wraps an existing error as an internal error.
// The wrapped error is logged but not returned to the client.
func WrapInternalError(err error, msg string) error {
	return &APIError{code: ErrCodeInternalError, message: msg, wrapped: err}
}

// NewNotFoundError creates an error for a post id that does not exist.
func NewNotFoundError(msg string) error {
	return &APIError{code: ErrCodeNotFound, message: msg}
}

// NewConflictError creates an error for content already used by another post.
func NewConflictError(msg string) error {
	return &APIError{code: ErrCodeConflict, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
func NewRateLimitError(msg string) error {
	return &APIError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
func NewRequestTooLargeError(msg string) error {
	return &APIError{code: ErrCodeRequestTooLarge, message: msg}
}
