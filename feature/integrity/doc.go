// Package integrity reports on the health of the service's dependencies.
//
// # Checks Provided
//
//   - Schema: compares the raid, signup and profile models with the live
//     tables (missing columns, type drift).
//   - Storage: checks that the snapshot bucket exists and counts archived
//     exports. Supports ?fix=true to create the bucket.
//   - Poller: grades the export poller as ok, pending, stale or error.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema
//   - GET /integrity/storage
//   - GET /integrity/poller
package integrity
