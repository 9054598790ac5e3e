// Package posts defines the post entity and the Store interface implemented by
// the storage backends in internal/store.
//
// The Store is the directly callable API for posts: the HTTP handlers use it to
// serve requests and the integration tests use the same instance to seed and
// clean up fixtures without going through HTTP.
//
// Invariants every backend upholds:
//   - ids are assigned by the store, are UUIDs and never change
//   - no two posts share identical content (checked atomically on save and update)
//   - reading or updating an unknown id fails with ErrNotFound
//   - deleting an unknown id is a no-op
package posts
