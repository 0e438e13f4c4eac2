/*
DESCRIPTION
  resample.go crops and resizes decoded frames to the fixed S x S cube
  used by the DCT engine, using Lanczos-3 convolution resampling.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package resample crops a frame to its letterbox-free rectangle and
// resizes it to a fixed S x S grayscale image using Lanczos-3 convolution,
// via golang.org/x/image/draw's custom-kernel scaler. The crop is applied
// as a sub-image view; no intermediate full-size copy is made.
package resample

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ausocean/vidhash/vhash/crop"
)

// lanczosA is the number of lobes of the Lanczos window, giving the
// "Lanczos-3" kernel named by spec §4.4.
const lanczosA = 3.0

// lanczos3 is a draw.Kernel implementing Lanczos-3 convolution resampling.
var lanczos3 = draw.Kernel{
	Support: lanczosA,
	At:      lanczosAt,
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func lanczosAt(x float64) float64 {
	x = math.Abs(x)
	if x >= lanczosA {
		return 0
	}
	return sinc(x) * sinc(x/lanczosA)
}

// To crops src to c's rectangle and resizes the result to side x side
// pixels, returning a fresh grayscale image. It is an error to call this
// with side <= 0.
func To(src image.Image, c crop.Crop, side int) *image.Gray {
	view := imageSubImage(src, c.Rectangle())

	dst := image.NewGray(image.Rect(0, 0, side, side))
	lanczos3.Scale(dst, dst.Bounds(), view, view.Bounds(), draw.Src, nil)
	return dst
}

// imageSubImage returns the sub-image of src bounded by r, using the
// SubImage method when src supports it (avoiding a copy) and falling back
// to a draw.Draw-based materialization otherwise.
func imageSubImage(src image.Image, r image.Rectangle) image.Image {
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := src.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewGray(r)
	draw.Draw(dst, r, src, r.Min, draw.Src)
	return dst
}
