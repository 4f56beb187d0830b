package ingest

import (
	"context"
	"testing"
	"time"

	"raidtrack/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArchive_StoreAndPrune(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchive(client, "raidtrack", 2, zap.NewNop())
	a.now = func() time.Time { return time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC) }

	client.On("PutObject", mock.Anything, "raidtrack", "exports/20260301T200000.000Z-RaidTrack.lua", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "raidtrack", minio.ListObjectsOptions{Prefix: "exports/", Recursive: true}).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "exports/20260101T000000.000Z-RaidTrack.lua"},
			minio.ObjectInfo{Key: "exports/20260301T200000.000Z-RaidTrack.lua"},
			minio.ObjectInfo{Key: "exports/20251201T000000.000Z-RaidTrack.lua"},
			minio.ObjectInfo{Key: "exports/20260201T000000.000Z-RaidTrack.lua"},
		))
	client.On("RemoveObject", mock.Anything, "raidtrack", "exports/20260101T000000.000Z-RaidTrack.lua", mock.Anything).Return(nil)
	client.On("RemoveObject", mock.Anything, "raidtrack", "exports/20251201T000000.000Z-RaidTrack.lua", mock.Anything).Return(nil)

	key, err := a.Store(context.Background(), "/data/RaidTrack.lua", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "exports/20260301T200000.000Z-RaidTrack.lua", key)
	client.AssertExpectations(t)
}

func TestArchive_List(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchive(client, "raidtrack", 0, zap.NewNop())

	client.On("ListObjects", mock.Anything, "raidtrack", mock.Anything).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "exports/a", Size: 1},
			minio.ObjectInfo{Key: "exports/b", Size: 2},
		)).Once()
	snapshots, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "exports/b", snapshots[0].Key)

	client.On("ListObjects", mock.Anything, "raidtrack", mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Err: assert.AnError})).Once()
	_, err = a.List(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestArchive_PutFailure(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchive(client, "raidtrack", 5, zap.NewNop())
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	_, err := a.Store(context.Background(), "RaidTrack.lua", []byte("x"))
	assert.ErrorIs(t, err, assert.AnError)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}
