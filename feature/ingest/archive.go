package ingest

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"raidtrack/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const archivePrefix = "exports/"

// Snapshot is one archived export.
type Snapshot struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Archive keeps copies of changed export files in object storage.
type Archive struct {
	client storage.Client
	bucket string
	keep   int
	logger *zap.Logger
	now    func() time.Time
}

// NewArchive creates an archive keeping the newest keep snapshots.
func NewArchive(client storage.Client, bucket string, keep int, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, keep: keep, logger: logger, now: time.Now}
}

// Store uploads data and prunes old snapshots. It returns the object key.
func (a *Archive) Store(ctx context.Context, file string, data []byte) (string, error) {
	key := path.Join(strings.TrimSuffix(archivePrefix, "/"),
		a.now().UTC().Format("20060102T150405.000Z")+"-"+filepath.Base(file))

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", file, err)
	}

	if err := a.prune(ctx); err != nil {
		a.logger.Warn("Failed to prune archived exports", zap.Error(err))
	}
	return key, nil
}

// List returns the archived snapshots, newest first.
func (a *Archive) List(ctx context.Context) ([]Snapshot, error) {
	var snapshots []Snapshot
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: archivePrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archived exports: %w", obj.Err)
		}
		snapshots = append(snapshots, Snapshot{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	// Keys start with a UTC timestamp, so they sort chronologically.
	slices.SortFunc(snapshots, func(a, b Snapshot) int { return strings.Compare(b.Key, a.Key) })
	return snapshots, nil
}

func (a *Archive) prune(ctx context.Context) error {
	if a.keep <= 0 {
		return nil
	}
	snapshots, err := a.List(ctx)
	if err != nil {
		return err
	}
	if len(snapshots) <= a.keep {
		return nil
	}
	for _, s := range snapshots[a.keep:] {
		if err := a.client.RemoveObject(ctx, a.bucket, s.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", s.Key, err)
		}
	}
	return nil
}
