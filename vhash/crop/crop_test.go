package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropDimensions(t *testing.T) {
	c := FromEdgeOffsets(100, 50, 10, 10, 5, 5)
	assert.Equal(t, uint32(80), c.Width())
	assert.Equal(t, uint32(40), c.Height())
	assert.Equal(t, uint32(3200), c.Area())
	assert.False(t, c.IsUncropped())
}

func TestNoneIsUncropped(t *testing.T) {
	c := None(640, 480)
	assert.True(t, c.IsUncropped())
	assert.Equal(t, uint32(640), c.Width())
	assert.Equal(t, uint32(480), c.Height())
}

func TestUnionTakesMinimumPerSide(t *testing.T) {
	a := FromEdgeOffsets(100, 100, 10, 20, 5, 15)
	b := FromEdgeOffsets(100, 100, 4, 30, 8, 2)

	u := a.Union(b)
	assert.Equal(t, uint32(4), u.Left)
	assert.Equal(t, uint32(20), u.Right)
	assert.Equal(t, uint32(5), u.Top)
	assert.Equal(t, uint32(2), u.Bot)
}

func TestRectangleClampsOversizedCrop(t *testing.T) {
	c := FromEdgeOffsets(10, 10, 6, 6, 0, 0)
	r := c.Rectangle()
	assert.Equal(t, 10, r.Dx(), "oversized left+right crop should be clamped to the whole width")
}

func TestRectangleNormalCase(t *testing.T) {
	c := FromEdgeOffsets(100, 50, 10, 10, 5, 5)
	r := c.Rectangle()
	assert.Equal(t, 80, r.Dx())
	assert.Equal(t, 40, r.Dy())
}
