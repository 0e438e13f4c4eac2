/*
DESCRIPTION
  options.go defines Options, the tunable parameters of the hashing
  pipeline, with the defaults named throughout spec.md (S=64, H=8).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vhash

import (
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/vhash/crop"
	"github.com/ausocean/vidhash/vhash/sampling"
)

// DefaultDCTSize is the cube edge S used for the DCT engine, and the
// number of frames decoded per video.
const DefaultDCTSize = 64

// DefaultHashSize is the cube edge H of the low-frequency sub-cube kept
// as the hash.
const DefaultHashSize = 8

// Options configures a single call to Hash.
type Options struct {
	// DCTSize is S: the cube edge for the DCT, and the number of frames
	// sampled from the video.
	DCTSize int

	// HashSize is H: the cube edge of the low-frequency sub-cube kept as
	// the hash. Must not exceed DCTSize.
	HashSize int

	// CropPolicy selects whether letterbox bars are detected and
	// removed before resizing.
	CropPolicy crop.Policy

	// Sampling selects the frame rate and skip-forward policy (spec
	// §4.2). Its FrameCount should normally equal DCTSize.
	Sampling sampling.Policy

	// Logger, if set, receives a debug-level diagnostic (mean/stddev of
	// the DCT cube's coefficients) after each hash. Left nil, no
	// diagnostic is logged.
	Logger logging.Logger
}

// DefaultOptions returns the recommended defaults: a 64-frame, 64x64x64
// DCT cube, an 8x8x8 hash sub-cube, and letterbox detection enabled.
func DefaultOptions() Options {
	return Options{
		DCTSize:    DefaultDCTSize,
		HashSize:   DefaultHashSize,
		CropPolicy: crop.Letterbox,
		Sampling:   sampling.Default(DefaultDCTSize),
	}
}

// HashBitCount returns H^3, the number of bits in a hash produced under o.
func (o Options) HashBitCount() int {
	return o.HashSize * o.HashSize * o.HashSize
}
