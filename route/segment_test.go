package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentConfig(t *testing.T) {
	t.Run("ByLength", func(t *testing.T) {
		c := DefaultSegmentConfig()
		assert.Equal(t, 6.0, c.Spacing(100))

		c.Sync(12.5)
		assert.Equal(t, 4, c.NodeCount)
		assert.Equal(t, 6.0, c.MaxLength)
	})

	t.Run("ByCount", func(t *testing.T) {
		c := SegmentConfig{MaxLength: 6, NodeCount: 5, LastEdited: ByCount}
		assert.InDelta(t, 5.0, c.Spacing(20), 1e-12)

		c.Sync(20)
		assert.InDelta(t, 5.0, c.MaxLength, 1e-12)
		assert.Equal(t, 5, c.NodeCount)
	})

	t.Run("DegenerateLengthIgnored", func(t *testing.T) {
		c := DefaultSegmentConfig()
		c.Sync(0)
		assert.Equal(t, DefaultSegmentConfig(), c)
	})
}
