package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("defaults when nothing is given", func(t *testing.T) {
		offset, limit := GetPaginationParams(nil, nil)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(40), intPtr(50))
		assert.Equal(t, 40, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, limit := GetPaginationParams(nil, intPtr(5000))
		assert.Equal(t, 100, limit)
	})

	t.Run("bad values fall back to defaults", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(-5), intPtr(0))
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})
}
