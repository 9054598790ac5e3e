// Package api contains the error codes, error response format and response helpers shared by the
// posts API handlers and middleware.
//
// Handlers return errors through RespondWithErrorResponse, which maps api and posts errors to an
// HTTP status code and a JSON ErrorResponse. Successful responses use RespondWithJSONPayload or
// RespondWithStatusCodeOnly.
package api
