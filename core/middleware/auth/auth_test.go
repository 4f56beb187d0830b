package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/raids/r-1", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		key    string
		status int
	}{
		{"MissingKey", Config{ApiKey: "secret"}, "/raids/r-1", "", fiber.StatusUnauthorized},
		{"WrongKey", Config{ApiKey: "secret"}, "/raids/r-1", "nope", fiber.StatusUnauthorized},
		{"ValidKey", Config{ApiKey: "secret"}, "/raids/r-1", "secret", fiber.StatusOK},
		{"PublicPath", Config{ApiKey: "secret", Public: []string{"/health"}}, "/health", "", fiber.StatusOK},
		{"Disabled", Config{}, "/raids/r-1", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := setupApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
