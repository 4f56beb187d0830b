package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"raidtrack/core/database"
	"raidtrack/core/storage"
	"raidtrack/core/storage/mocks"
	"raidtrack/feature/ingest"
	"raidtrack/feature/raid"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedStatus ingest.Status

func (s fixedStatus) Status() ingest.Status { return ingest.Status(s) }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, raid.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupTestApp(t *testing.T, db *gorm.DB, client storage.Client, poller StatusSource) *fiber.App {
	app := fiber.New()
	svc := NewService(db, client, storage.Config{Bucket: "test-bucket"}, poller, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func decode(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleIntegrityCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Key: "exports/a"}))

	app := setupTestApp(t, setupDB(t), client, nil)
	status, body := decode(t, app, "/integrity")

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["schema"].(map[string]any)["matched"])
	assert.Equal(t, float64(1), body["storage"].(map[string]any)["snapshots"])
	assert.Equal(t, "disabled", body["poller"].(map[string]any)["status"])
}

func TestHandleSchemaCheck(t *testing.T) {
	t.Run("Matched", func(t *testing.T) {
		app := setupTestApp(t, setupDB(t), nil, nil)
		status, body := decode(t, app, "/integrity/schema")
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["matched"])
	})

	t.Run("Disabled", func(t *testing.T) {
		app := setupTestApp(t, nil, nil, nil)
		status, _ := decode(t, app, "/integrity/schema")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

		status, body := decode(t, setupTestApp(t, nil, client, nil), "/integrity/storage")
		assert.Equal(t, 200, status)
		assert.Equal(t, false, body["exists"])
	})

	t.Run("Fix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)

		status, body := decode(t, setupTestApp(t, nil, client, nil), "/integrity/storage?fix=true")
		assert.Equal(t, 200, status)
		assert.Equal(t, "fixed", body["status"])
		client.AssertCalled(t, "MakeBucket", mock.Anything, "test-bucket", mock.Anything)
	})
}

func TestHandlePollerCheck(t *testing.T) {
	last := time.Now()
	app := setupTestApp(t, nil, nil, fixedStatus{File: "/data/RaidTrack.lua", IntervalSeconds: 60, LastCheck: &last})

	status, body := decode(t, app, "/integrity/poller")
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "/data/RaidTrack.lua", body["file"])
}
