// Package reconcile keeps externally owned artifacts in step with the
// records that reference them.
//
// An artifact (a chat message, a calendar entry) lives in a system this
// service does not control: it can be deleted behind our back at any time.
// The stored identifier is therefore a hint, never proof of existence.
// Sync applies one rule to every artifact kind:
//
//   - no stored id: create
//   - stored id: edit in place
//   - edit reports ErrNotFound: forget the id and create a replacement
//   - any other edit failure: keep the id, report the failure
//
// Only ErrNotFound clears an identifier, so a transient outage never
// orphans an artifact that still exists.
//
// Cache is a small TTL cache with stampede protection, used for lookups
// that are expensive on the remote side (destination channels). Locks
// serializes Sync calls that target the same record.
//
//	result := reconcile.Sync(ctx, reconcile.NewArtifact("announcement", create, edit), record.AnnouncementID)
//	record.AnnouncementID = result.ID
package reconcile
