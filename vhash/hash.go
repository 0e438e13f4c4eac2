/*
DESCRIPTION
  hash.go implements Hash, the top-level pipeline tying together frame
  selection, letterbox detection, resampling, the 3-D DCT engine and the
  hash quantizer into a single VideoHash per video.

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
	"image"

	"github.com/ausocean/vidhash/herrors"
	"github.com/ausocean/vidhash/vhash/bitset"
	"github.com/ausocean/vidhash/vhash/crop"
	"github.com/ausocean/vidhash/vhash/dct"
	"github.com/ausocean/vidhash/vhash/resample"
)

// Hash computes the perceptual fingerprint of the video at path, reading
// frames through fs according to opts. It is the sole entry point for
// components C1 through C7.
func Hash(fs FrameSource, path string, opts Options) (VideoHash, error) {
	duration, err := fs.Duration(path)
	if err != nil {
		return VideoHash{}, herrors.NewNotAVideo(path, err)
	}

	skip, fps := opts.Sampling.Select(duration.Seconds())

	frames, err := collectFrames(fs, path, fps.Num, fps.Den, skip, opts.Sampling.FrameCount)
	if err != nil {
		return VideoHash{}, err
	}
	if len(frames) < opts.DCTSize {
		return VideoHash{}, herrors.NewNotEnoughFrames(path)
	}

	c, err := crop.Detect(opts.CropPolicy, frames)
	if err != nil {
		return VideoHash{}, herrors.NewNotEnoughFrames(path)
	}

	resized := make([]*image.Gray, opts.DCTSize)
	for i := 0; i < opts.DCTSize; i++ {
		resized[i] = resample.To(frames[i], c, opts.DCTSize)
	}

	cube := dct.FromFrames(resized, opts.DCTSize)
	coeffs := dct.Transform3D(cube)

	if opts.Logger != nil {
		mean, stddev := dct.Stats(coeffs)
		opts.Logger.Debug("dct cube stats", "path", path, "mean", mean, "stddev", stddev)
	}

	bits := quantize(coeffs, opts.HashSize)

	return VideoHash{
		SrcPath:         path,
		DurationSeconds: uint32(duration.Seconds()),
		Bits:            bits,
	}, nil
}

// collectFrames drains fs's frame iterator for path, stopping once
// wanted frames have been read or the iterator ends. A mid-stream
// decoder error is wrapped as a VideoProcessing error.
func collectFrames(fs FrameSource, path string, fpsNum, fpsDen int64, skip float64, wanted int) ([]*image.Gray, error) {
	it := fs.Frames(path, fpsNum, fpsDen, skip)

	frames := make([]*image.Gray, 0, wanted)
	for len(frames) < wanted {
		f, ok, err := it.Next()
		if err != nil {
			return nil, herrors.NewVideoProcessing(path, err.Error())
		}
		if !ok {
			break
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// quantize slices the origin-anchored H x H x H sub-cube from coeffs in
// logical (t, y, x) order and packs the sign of each coefficient into a
// bit vector of H^3 bits (spec §4.6).
func quantize(coeffs *dct.Cube, hashSize int) bitset.Bits {
	bits := bitset.New(hashSize * hashSize * hashSize)

	k := 0
	for t := 0; t < hashSize; t++ {
		for y := 0; y < hashSize; y++ {
			for x := 0; x < hashSize; x++ {
				if coeffs.At(t, y, x) > 0.0 {
					bits.Set(k)
				}
				k++
			}
		}
	}
	return bits
}
