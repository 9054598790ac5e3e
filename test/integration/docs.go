// Package integration contains end-to-end tests for the posts API server.
//
// These tests verify the server handles API requests correctly (expected responses,
// error handling, persistence). The server is started in-process against a fresh store
// and each test keeps a direct handle on that store to seed and check fixtures without
// going through HTTP.
//
// The store backend is chosen with TEST_STORE_BACKEND (postgres, sqlite, bolt or memory).
// postgres is the default and needs a running server, see env_setup.go.
package integration
