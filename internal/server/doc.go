// Package server provides the HTTP server for the posts API.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// Routes:
//   - /posts and /posts/{postID}: the posts resource (rate limited, request size limited)
//   - /health/live, /health/ready, /version, /docs/swagger.json: infrastructure endpoints
//
// handlers are in internal/server/handlers and middleware in internal/server/middleware
package server
