// Package storage wraps the MinIO client behind a small interface.
//
// The ingest feature archives every changed export file here so a bad
// export can be inspected or replayed later. The interface exists so the
// archive and integrity code can be tested with core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
