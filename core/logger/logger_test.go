package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{"ProductionJSON", Config{Level: "info", Format: "json"}, zapcore.InfoLevel, false},
		{"DevelopmentConsole", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"WarnOnly", Config{Level: "warn"}, zapcore.WarnLevel, false},
		{"DefaultLevel", Config{}, zapcore.InfoLevel, false},
		{"BadLevel", Config{Level: "loud"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-1")
		WithRayID(base, c).Info("tagged")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ray-1", logs.All()[0].ContextMap()["ray_id"])
}

func TestWithRaid(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	WithRaid(zap.New(core), "guild", "r-1").Info("x")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "guild", fields["scope"])
	assert.Equal(t, "r-1", fields["raid_id"])
}
