package dct

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubeSetAt(t *testing.T) {
	c := NewCube(4)
	c.Set(1, 2, 3, 42.5)
	assert.Equal(t, 42.5, c.At(1, 2, 3))
	assert.Equal(t, 0.0, c.At(0, 0, 0))
}

func TestFromFramesSubtractsMidpoint(t *testing.T) {
	side := 2
	frames := make([]*image.Gray, side)
	for i := range frames {
		img := image.NewGray(image.Rect(0, 0, side, side))
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				img.SetGray(x, y, color.Gray{Y: 128})
			}
		}
		frames[i] = img
	}

	cube := FromFrames(frames, side)
	for ft := 0; ft < side; ft++ {
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				assert.Zero(t, cube.At(ft, y, x), "mid-gray input should map to zero")
			}
		}
	}
}
