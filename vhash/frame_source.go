/*
DESCRIPTION
  frame_source.go defines FrameSource, the decoder-agnostic interface the
  hashing pipeline requires of an external video decoder (spec §6.1).

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
	"time"
)

// FrameSource is the only way the hashing pipeline talks to a decoder. Any
// concrete decoder (a wrapped FFmpeg/GStreamer process, a GoCV capture, a
// test double) satisfies this interface.
type FrameSource interface {
	// Duration returns the video's total duration.
	Duration(path string) (time.Duration, error)

	// Resolution returns the video's native frame width and height.
	Resolution(path string) (w, h int, err error)

	// Frames returns a lazy, finite, non-restartable iterator of
	// grayscale frames at their native resolution, decoded starting
	// startOffsetSeconds into the video at the given rational frame
	// rate. The caller (the hashing pipeline) performs cropping and
	// resizing; frames come back at native size.
	Frames(path string, fpsNum, fpsDen int64, startOffsetSeconds float64) FrameIterator
}

// FrameIterator yields grayscale frames in decode order. Next returns
// (frame, true, nil) while frames remain, (nil, false, nil) at a clean
// end of stream, and (nil, false, err) if decoding failed mid-stream.
type FrameIterator interface {
	Next() (*image.Gray, bool, error)
}
