package integrity

import (
	"testing"

	"raidtrack/core/storage"
	"raidtrack/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(nil, new(mocks.Client), storage.Config{Bucket: "test-bucket"}, nil, zap.NewNop()))

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	empty := NewFeature(NewService(nil, nil, storage.Config{}, nil, zap.NewNop()))
	assert.False(t, empty.IsEnabled())
}
