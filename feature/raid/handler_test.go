package raid

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *reconcilerFixture) {
	f := newReconcilerFixture(t, testConfig())
	app := fiber.New()
	feature := NewFeature(f.store, f.reconciler, zap.NewNop())
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, f
}

func TestHandleGet(t *testing.T) {
	app, f := setupTestApp(t)
	ctx := context.Background()
	_, err := f.reconciler.Reconcile(ctx, "guild-1", heroicPayload())
	require.NoError(t, err)
	require.NoError(t, f.store.UpsertSignup(ctx, &SignupEntry{RaidID: "r-1", UserID: "u1", Role: RoleTank}))

	resp, err := app.Test(httptest.NewRequest("GET", "/raids/r-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "r-1", body.Raid.RaidID)
	assert.Equal(t, "msg-1", *body.Raid.AnnouncementID)
	require.Len(t, body.Signups, 1)
	assert.Equal(t, RoleTank, body.Signups[0].Role)
}

func TestHandleGet_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/raids/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleRefresh(t *testing.T) {
	app, f := setupTestApp(t)
	_, err := f.reconciler.Reconcile(context.Background(), "guild-1", heroicPayload())
	require.NoError(t, err)
	f.announcements.remove("msg-1")

	resp, err := app.Test(httptest.NewRequest("POST", "/raids/r-1/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	ann := body["announcement"].(map[string]any)
	assert.Equal(t, "recreated", ann["action"])
	assert.Equal(t, "msg-2", ann["id"])
}

func TestHandleRefresh_Errors(t *testing.T) {
	app, f := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/raids/nope/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	_, err = f.reconciler.Reconcile(context.Background(), "guild-1", heroicPayload())
	require.NoError(t, err)
	f.destinations.err = assert.AnError

	resp, err = app.Test(httptest.NewRequest("POST", "/raids/r-1/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}
