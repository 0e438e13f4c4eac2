/*
DESCRIPTION
  dct.go implements the separable 3-D DCT-II transform described in spec
  §4.5: three passes of a 1-D DCT-II primitive, separated by physical
  (data-moving) transposes so that the 1-D primitive always sees
  contiguous memory.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dct

import "math"

// Transform3D computes the separable 3-D DCT-II of cube, returning a new
// cube of DCT coefficients in the same logical (t, y, x) order. No
// normalization is applied: the common 4/(S^2) scaling is deliberately
// omitted because only the sign of each coefficient is used downstream.
//
// Do not replace the physical transposes below with lazy strided views:
// the 1-D DCT primitive requires contiguous row access.
func Transform3D(cube *Cube) *Cube {
	work := cloneCube(cube)

	// Pass 1: DCT-II along x (the last axis, already contiguous).
	dct1DAlongLastAxis(work)

	// Transpose axes {2<->1}; new last axis is the original y.
	work = swapAxes(work, 1, 2)
	dct1DAlongLastAxis(work)

	// Transpose axes {2<->0}; new last axis is the original t.
	work = swapAxes(work, 0, 2)
	dct1DAlongLastAxis(work)

	// Invert the transposes, in reverse order, to restore (t, y, x).
	work = swapAxes(work, 0, 2)
	work = swapAxes(work, 1, 2)

	return work
}

func cloneCube(src *Cube) *Cube {
	dst := NewCube(src.side)
	copy(dst.data, src.data)
	return dst
}

// swapAxes returns a new cube with logical axes a and b physically
// exchanged: dst.At(i0,i1,i2) == src.At(coords) where coords is (i0,i1,i2)
// with positions a and b swapped. The side is uniform across all axes, so
// no dimensions need to change.
func swapAxes(src *Cube, a, b int) *Cube {
	s := src.side
	dst := NewCube(s)
	var idx [3]int
	for i0 := 0; i0 < s; i0++ {
		for i1 := 0; i1 < s; i1++ {
			for i2 := 0; i2 < s; i2++ {
				idx[0], idx[1], idx[2] = i0, i1, i2
				idx[a], idx[b] = idx[b], idx[a]
				dst.Set(i0, i1, i2, src.At(idx[0], idx[1], idx[2]))
			}
		}
	}
	return dst
}

// dct1DAlongLastAxis applies the 1-D DCT-II in place to every contiguous
// row of length side along the cube's last axis.
func dct1DAlongLastAxis(cube *Cube) {
	s := cube.side
	row := make([]float64, s)
	for base := 0; base+s <= len(cube.data); base += s {
		copy(row, cube.data[base:base+s])
		dct1D(row, cube.data[base:base+s])
	}
}

// dct1D computes the unnormalized DCT-II of src into dst (which may not
// alias src): dst[k] = sum_n src[n] * cos(pi/N * (n+0.5) * k).
func dct1D(src, dst []float64) {
	n := len(src)
	for k := 0; k < n; k++ {
		var sum float64
		for i, x := range src {
			sum += x * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		dst[k] = sum
	}
}
