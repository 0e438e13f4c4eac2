/*
DESCRIPTION
  stats.go exposes summary statistics over a Cube's coefficients, used to
  log a cheap sanity diagnostic after each 3-D DCT transform (a cube of
  all-zero or wildly out-of-range coefficients usually means a decoder or
  resampling bug upstream, not a hashing bug) and by the package's own
  tests.

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

import (
	"gonum.org/v1/gonum/stat"
)

// Stats returns the mean and standard deviation of every coefficient in
// cube, using gonum/stat's streaming moment computation rather than a
// hand-rolled two-pass mean/variance.
func Stats(cube *Cube) (mean, stddev float64) {
	return stat.MeanStdDev(cube.data, nil)
}
