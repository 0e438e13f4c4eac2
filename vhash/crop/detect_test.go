package crop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterboxed builds a w x h grayscale frame with barHeight rows of solid
// black letterbox bars at the top and bottom. The content region varies
// across each row and column (a checkerboard) so it is never itself
// mistaken for a uniform border strip.
func letterboxed(w, h int, barHeight int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40)
			if (x+y)%2 == 0 {
				v = 220
			}
			if y < barHeight || y >= h-barHeight {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestDetectNoCropReturnsWholeFrame(t *testing.T) {
	frames := []*image.Gray{letterboxed(64, 64, 8)}
	c, err := Detect(NoCrop, frames)
	require.NoError(t, err)
	assert.True(t, c.IsUncropped())
	assert.Equal(t, uint32(64), c.Width())
}

func TestDetectLetterboxFindsBars(t *testing.T) {
	frames := []*image.Gray{letterboxed(64, 64, 8)}
	c, err := Detect(Letterbox, frames)
	require.NoError(t, err)

	assert.Equal(t, uint32(8), c.Top)
	assert.Equal(t, uint32(8), c.Bot)
	assert.Equal(t, uint32(0), c.Left)
	assert.Equal(t, uint32(0), c.Right)
}

func TestDetectLetterboxErrorsWithNoFrames(t *testing.T) {
	_, err := Detect(Letterbox, nil)
	assert.ErrorIs(t, err, ErrNotEnoughFrames)
}

func TestSampleCapsAndStrides(t *testing.T) {
	frames := make([]*image.Gray, 100)
	for i := range frames {
		frames[i] = letterboxed(8, 8, 0)
	}
	samples := Sample(frames)
	assert.LessOrEqual(t, len(samples), maxSampleFrames)
}

func TestSampleEmpty(t *testing.T) {
	assert.Nil(t, Sample(nil))
}
