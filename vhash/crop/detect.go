/*
DESCRIPTION
  detect.go implements the letterbox detector: inspecting border rows and
  columns of a frame for uniform near-black/near-white content and folding
  the result across several sampled frames into a single crop.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crop

import (
	"errors"
	"image"
)

// Policy selects how the detector treats a sequence of frames.
type Policy int

const (
	// Letterbox detects and removes uniform border bars. It is the zero
	// value so that a zero-valued Options defaults to detection enabled.
	Letterbox Policy = iota

	// NoCrop always returns the zero crop, regardless of frame content.
	NoCrop
)

// ErrNotEnoughFrames is returned by Detect when Letterbox policy is used
// but no frames were supplied.
var ErrNotEnoughFrames = errors.New("crop: not enough frames to detect letterbox")

// String renders p for cache metadata and diagnostics.
func (p Policy) String() string {
	switch p {
	case NoCrop:
		return "none"
	case Letterbox:
		return "letterbox"
	default:
		return "unknown"
	}
}

// tolerance is the per-pixel acceptance band: a pixel counts as part of a
// uniform border strip if it is within tolerance of black or of white, or
// if the whole strip's luma range is within tolerance.
const tolerance = 16

// maxSampleFrames caps how many of the supplied frames are inspected: the
// first frame, then every 8th frame, up to this many samples.
const maxSampleFrames = 8

// sampleStride is the frame interval used after the first sample.
const sampleStride = 8

// Sample picks up to maxSampleFrames frames out of all, following the
// policy described in spec §4.3: the first frame, then every 8th.
func Sample(all []*image.Gray) []*image.Gray {
	if len(all) == 0 {
		return nil
	}
	var out []*image.Gray
	for i := 0; i < len(all) && len(out) < maxSampleFrames; i += sampleStride {
		out = append(out, all[i])
	}
	return out
}

// Detect computes the letterbox crop for frames according to policy. For
// Letterbox policy with no frames, it returns ErrNotEnoughFrames.
func Detect(policy Policy, frames []*image.Gray) (Crop, error) {
	if policy == NoCrop {
		if len(frames) == 0 {
			return Crop{}, nil
		}
		b := frames[0].Bounds()
		return None(uint32(b.Dx()), uint32(b.Dy())), nil
	}

	samples := Sample(frames)
	if len(samples) == 0 {
		return Crop{}, ErrNotEnoughFrames
	}

	union := cropOfFrame(samples[0])
	for _, f := range samples[1:] {
		union = union.Union(cropOfFrame(f))
	}
	return union, nil
}

// cropOfFrame computes the tightest crop for a single frame by walking
// inward from each edge and counting uniform rows/columns.
func cropOfFrame(f *image.Gray) Crop {
	b := f.Bounds()
	w, h := b.Dx(), b.Dy()

	left := countUniformCols(f, b, true)
	right := countUniformCols(f, b, false)
	top := countUniformRows(f, b, true)
	bot := countUniformRows(f, b, false)

	// Clamp so that width >= 1 and height >= 1.
	if int(left+right) >= w {
		left, right = 0, 0
	}
	if int(top+bot) >= h {
		top, bot = 0, 0
	}

	return FromEdgeOffsets(uint32(w), uint32(h), left, right, top, bot)
}

// countUniformCols walks inward from the left (fromStart=true) or right
// edge, counting how many leading columns are uniform border strips.
func countUniformCols(f *image.Gray, b image.Rectangle, fromStart bool) uint32 {
	w, h := b.Dx(), b.Dy()
	var count uint32
	for i := 0; i < w; i++ {
		x := b.Min.X + i
		if !fromStart {
			x = b.Max.X - 1 - i
		}
		if !isUniformStrip(func(j int) uint8 { return f.GrayAt(x, b.Min.Y+j).Y }, h) {
			break
		}
		count++
	}
	return count
}

// countUniformRows is the row analogue of countUniformCols.
func countUniformRows(f *image.Gray, b image.Rectangle, fromStart bool) uint32 {
	w, h := b.Dx(), b.Dy()
	var count uint32
	for i := 0; i < h; i++ {
		y := b.Min.Y + i
		if !fromStart {
			y = b.Max.Y - 1 - i
		}
		if !isUniformStrip(func(j int) uint8 { return f.GrayAt(b.Min.X+j, y).Y }, w) {
			break
		}
		count++
	}
	return count
}

// isUniformStrip reports whether a 1-pixel-wide strip of n samples (at(i))
// is acceptable as letterbox border: every sample is near-black or
// near-white, or the whole strip's luma range is within tolerance.
func isUniformStrip(at func(i int) uint8, n int) bool {
	if n == 0 {
		return false
	}

	allNearBlackOrWhite := true
	lo, hi := at(0), at(0)
	for i := 0; i < n; i++ {
		v := at(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		if !(v <= tolerance || v >= 255-tolerance) {
			allNearBlackOrWhite = false
		}
	}

	if allNearBlackOrWhite {
		return true
	}
	return int(hi)-int(lo) <= tolerance
}
