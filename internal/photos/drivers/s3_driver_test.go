package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePhotoContentType(t *testing.T) {
	t.Run("explicit type wins", func(t *testing.T) {
		assert.Equal(t, "image/webp", resolvePhotoContentType("a/b/photo.jpg", "image/webp"))
	})

	t.Run("missing type derived from extension", func(t *testing.T) {
		assert.Equal(t, "image/jpeg", resolvePhotoContentType("a/b/photo.jpg", ""))
		assert.Equal(t, "image/png", resolvePhotoContentType("a/b/photo.png", "application/octet-stream"))
	})

	t.Run("unknown extension falls back", func(t *testing.T) {
		assert.Equal(t, "application/octet-stream", resolvePhotoContentType("a/b/blob", ""))
	})
}
