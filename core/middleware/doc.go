// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every route except
//     the configured public paths.
//   - rayid: assigns each request a ray id, stored in the "ray_id" local
//     and echoed in the X-Ray-ID response header for tracing.
package middleware
