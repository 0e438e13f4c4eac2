/*
DESCRIPTION
  cube.go defines Cube, a dense S x S x S buffer of float64 samples
  addressed in logical (t, y, x) order, used both for the time-domain
  frame stack fed into the DCT engine and for its coefficient output.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dct computes the separable 3-D DCT-II of a cube of grayscale
// video frames, used to extract a low-frequency perceptual fingerprint.
package dct

import "image"

// Cube is a dense S x S x S buffer addressed in logical (t, y, x) order:
// t indexes frames (time), y indexes rows, x indexes columns.
type Cube struct {
	side int
	data []float64
}

// NewCube allocates a zeroed cube of side*side*side samples.
func NewCube(side int) *Cube {
	return &Cube{side: side, data: make([]float64, side*side*side)}
}

// Side returns the cube's edge length S.
func (c *Cube) Side() int { return c.side }

func (c *Cube) index(t, y, x int) int {
	s := c.side
	return t*s*s + y*s + x
}

// At returns the sample at logical position (t, y, x).
func (c *Cube) At(t, y, x int) float64 { return c.data[c.index(t, y, x)] }

// Set stores v at logical position (t, y, x).
func (c *Cube) Set(t, y, x int, v float64) { c.data[c.index(t, y, x)] = v }

// FromFrames builds a time-domain Cube from exactly `side` grayscale
// frames of size side x side, mapping each luma sample to luma - 128.0 as
// required by spec §3 (FrameCube).
func FromFrames(frames []*image.Gray, side int) *Cube {
	cube := NewCube(side)
	for t, f := range frames {
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				cube.Set(t, y, x, float64(f.GrayAt(x, y).Y)-128.0)
			}
		}
	}
	return cube
}
