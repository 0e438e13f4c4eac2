/*
DESCRIPTION
  videofile.go implements vhash.FrameSource for video files on disk, using
  gocv's VideoCapture as the decoder backend.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package videofile adapts gocv's VideoCapture to vhash.FrameSource, so
// the hashing pipeline can pull grayscale frames from an arbitrary video
// file at an arbitrary sampling rate.
package videofile

import (
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"

	"github.com/ausocean/vidhash/vhash"
)

// BackendName identifies this decoder backend in cache metadata (spec
// §6.2); a change here invalidates caches built under a different
// decoder.
const BackendName = "gocv"

// Source opens video files with gocv.VideoCapture. The zero value is
// ready to use.
type Source struct{}

// New returns a ready-to-use Source.
func New() *Source { return &Source{} }

// Duration returns path's duration, computed from the reported frame
// count and frame rate.
func (s *Source) Duration(path string) (time.Duration, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return 0, fmt.Errorf("videofile: could not open %q: %w", path, err)
	}
	defer vc.Close()

	fps := vc.Get(gocv.VideoCaptureFPS)
	frameCount := vc.Get(gocv.VideoCaptureFrameCount)
	if fps <= 0 || frameCount <= 0 {
		return 0, fmt.Errorf("videofile: %q reports invalid fps=%v frame_count=%v", path, fps, frameCount)
	}
	seconds := frameCount / fps
	return time.Duration(seconds * float64(time.Second)), nil
}

// Resolution returns path's frame width and height in pixels.
func (s *Source) Resolution(path string) (width, height int, err error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("videofile: could not open %q: %w", path, err)
	}
	defer vc.Close()

	width = int(vc.Get(gocv.VideoCaptureFrameWidth))
	height = int(vc.Get(gocv.VideoCaptureFrameHeight))
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("videofile: %q reports invalid resolution %dx%d", path, width, height)
	}
	return width, height, nil
}

// Frames opens path and returns an iterator yielding grayscale frames
// sampled at fpsNum/fpsDen frames per second, starting startOffsetSeconds
// into the video.
func (s *Source) Frames(path string, fpsNum, fpsDen int64, startOffsetSeconds float64) vhash.FrameIterator {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return &errorIterator{err: fmt.Errorf("videofile: could not open %q: %w", path, err)}
	}

	sourceFPS := vc.Get(gocv.VideoCaptureFPS)
	if sourceFPS <= 0 {
		vc.Close()
		return &errorIterator{err: fmt.Errorf("videofile: %q reports invalid fps", path)}
	}

	if startOffsetSeconds > 0 {
		vc.Set(gocv.VideoCapturePosMsec, startOffsetSeconds*1000)
	}

	wantedFPS := float64(fpsNum) / float64(fpsDen)
	stepSeconds := 1.0 / wantedFPS

	return &capIterator{
		vc:           vc,
		sourceFPS:    sourceFPS,
		stepSeconds:  stepSeconds,
		nextPosMsec:  startOffsetSeconds * 1000,
		mat:          gocv.NewMat(),
		gray:         gocv.NewMat(),
	}
}

// capIterator pulls frames from a gocv.VideoCapture at a fixed time step,
// seeking forward by position rather than decoding and discarding every
// intermediate frame when the source frame rate is much higher than the
// wanted sampling rate.
type capIterator struct {
	vc          *gocv.VideoCapture
	sourceFPS   float64
	stepSeconds float64
	nextPosMsec float64
	mat, gray   gocv.Mat
	closed      bool
}

// Next returns the next sampled frame, converted to grayscale. ok is
// false once the underlying stream is exhausted.
func (it *capIterator) Next() (*image.Gray, bool, error) {
	if it.closed {
		return nil, false, nil
	}

	it.vc.Set(gocv.VideoCapturePosMsec, it.nextPosMsec)
	it.nextPosMsec += it.stepSeconds * 1000

	if ok := it.vc.Read(&it.mat); !ok || it.mat.Empty() {
		it.close()
		return nil, false, nil
	}

	gocv.CvtColor(it.mat, &it.gray, gocv.ColorBGRToGray)

	img, err := it.gray.ToImage()
	if err != nil {
		it.close()
		return nil, false, fmt.Errorf("videofile: could not convert frame to image: %w", err)
	}

	gimg, ok := img.(*image.Gray)
	if !ok {
		gimg = toGray(img)
	}
	return gimg, true, nil
}

func (it *capIterator) close() {
	if it.closed {
		return
	}
	it.closed = true
	it.mat.Close()
	it.gray.Close()
	it.vc.Close()
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

// errorIterator is used when Frames fails to open the source before any
// frames are read. Its first Next reports that failure; every later Next
// reports an "already reported" error, so it never yields a frame or a
// clean end of stream.
type errorIterator struct{ err error }

func (it *errorIterator) Next() (*image.Gray, bool, error) {
	if it.err == nil {
		return nil, false, nil
	}
	err := it.err
	it.err = errors.New("videofile: iterator already reported its error")
	return nil, false, err
}
