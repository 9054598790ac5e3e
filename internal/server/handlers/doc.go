// Package handlers provides the HTTP handlers for the posts API and the
// infrastructure endpoints (health, readiness, version, docs).
//
// Handlers are constructed with their dependencies (HandleX(store) http.HandlerFunc)
// and report failures through api.RespondWithErrorResponse.
package handlers
