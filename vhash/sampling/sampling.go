/*
DESCRIPTION
  sampling.go implements the frame selection policy: given a video's
  duration, choose a decode frame rate and seek offset so that exactly N
  frames are produced for hashing.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sampling picks the (fps, skip) pair handed to a FrameSource so
// that exactly N frames are produced over a video's representative window,
// no matter how long or short the video is. Decoders are far more reliable
// with a computed, file-specific frame rate than with a fixed one, and a
// computed rate avoids losing the tail frame to rounding.
package sampling

// Rational is a fps expressed as a fraction, the form frame decoders
// expect (see spec §4.2/§9: "dynamic framerate as rational").
type Rational struct {
	Num, Den int64
}

// rationalDenominator is the denominator used to encode the computed fps
// as a rational. Spec §9 requires a denominator with precision >= 1e4.
const rationalDenominator = 16384

// Policy holds the tunable parameters of the selection algorithm. Zero
// value is not valid; use Default.
type Policy struct {
	// WindowSeconds is the desired length, in seconds, of the window near
	// the start of the video from which frames are drawn.
	WindowSeconds float64

	// SkipSeconds is the desired seek-forward offset before sampling
	// begins, for videos long enough to afford it.
	SkipSeconds float64

	// FrameCount is the number of frames to produce: N in spec notation,
	// normally equal to the DCT cube side.
	FrameCount int
}

// Default returns the policy's recommended defaults: a 15s window, a 30s
// skip, and N frames equal to the DCT cube side.
func Default(dctSize int) Policy {
	return Policy{WindowSeconds: 15, SkipSeconds: 30, FrameCount: dctSize}
}

// Select computes the (skip, fps) pair to hand to a FrameSource for a
// video of duration D seconds, following spec §4.2's piecewise algorithm
// verbatim.
func (p Policy) Select(durationSeconds float64) (skip float64, fps Rational) {
	n := float64(p.FrameCount)

	var fpsF float64
	switch {
	case durationSeconds < 2:
		fpsF = n / 1
		skip = 0
	case durationSeconds < p.WindowSeconds:
		fpsF = n / (durationSeconds - 2)
		skip = 0
	case durationSeconds < p.SkipSeconds+p.WindowSeconds:
		fpsF = n / p.WindowSeconds
		skip = durationSeconds - p.WindowSeconds - 2
	default:
		fpsF = n / p.WindowSeconds
		skip = p.SkipSeconds
	}

	return skip, toRational(fpsF)
}

// toRational encodes fps as a fraction with a fixed, sufficiently precise
// denominator, as required by decoders that accept only integer
// framerates.
func toRational(fps float64) Rational {
	num := int64(fps*rationalDenominator + 0.5)
	return Rational{Num: num, Den: rationalDenominator}
}
