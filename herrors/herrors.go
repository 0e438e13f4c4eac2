/*
DESCRIPTION
  herrors.go provides the error taxonomy shared across the hashing,
  caching, search and projection packages of vidhash.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package herrors defines the failure taxonomy used across vidhash: decode
// errors, cache I/O errors and metadata validation errors. Every error kind
// is represented by an *Error carrying a Kind so that callers can use
// errors.As to recover structured information without string matching.
package herrors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a vidhash error.
type Kind int

const (
	// NotAVideo indicates the decoder reported zero video streams, or an
	// unknown duration, for the given path.
	NotAVideo Kind = iota

	// NotEnoughFrames indicates fewer than the required number of frames
	// survived selection, letterbox cropping or resampling.
	NotEnoughFrames

	// VideoProcessing indicates the decoder failed mid-stream.
	VideoProcessing

	// CacheFileIO indicates an I/O failure touching the cache or metadata
	// files.
	CacheFileIO

	// Serialization indicates the cache serializer failed to encode a value.
	Serialization

	// Deserialization indicates the cache serializer failed to decode a
	// stored value.
	Deserialization

	// MetadataValidation indicates the on-disk cache metadata sidecar does
	// not match the metadata supplied by the caller.
	MetadataValidation

	// KeyMissing indicates Fetch was called for a path with no cache entry.
	KeyMissing
)

// String returns a short, stable name for k, used in error messages and
// logging.
func (k Kind) String() string {
	switch k {
	case NotAVideo:
		return "not_a_video"
	case NotEnoughFrames:
		return "not_enough_frames"
	case VideoProcessing:
		return "video_processing"
	case CacheFileIO:
		return "cache_file_io"
	case Serialization:
		return "serialization"
	case Deserialization:
		return "deserialization"
	case MetadataValidation:
		return "metadata_validation"
	case KeyMissing:
		return "key_missing"
	default:
		return "unknown"
	}
}

// maxReasonRunes caps the diagnostic string carried by a VideoProcessing
// error, to stop a runaway decoder stderr from inflating logs.
const maxReasonRunes = 300

// Error is the concrete error type returned by vidhash packages. Path is
// empty when the error is not associated with a specific file.
type Error struct {
	Kind   Kind
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Reason != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Reason)
	case e.Path != "":
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxReasonRunes {
		return s
	}
	return string(r[:maxReasonRunes])
}

// NewNotAVideo reports that path does not look like a video to the decoder.
func NewNotAVideo(path string, cause error) *Error {
	return &Error{Kind: NotAVideo, Path: path, Err: cause}
}

// NewNotEnoughFrames reports that path did not yield enough frames for a
// full hash cube.
func NewNotEnoughFrames(path string) *Error {
	return &Error{Kind: NotEnoughFrames, Path: path}
}

// NewVideoProcessing reports a mid-stream decoder failure, truncating
// reason to a bounded length.
func NewVideoProcessing(path, reason string) *Error {
	return &Error{Kind: VideoProcessing, Path: path, Reason: truncate(reason)}
}

// NewCacheFileIO reports an I/O failure against the cache or its metadata
// sidecar.
func NewCacheFileIO(path string, cause error) *Error {
	return &Error{Kind: CacheFileIO, Path: path, Err: cause}
}

// NewSerialization reports that the cache failed to encode its contents.
func NewSerialization(cause error) *Error {
	return &Error{Kind: Serialization, Err: cause}
}

// NewDeserialization reports that the cache failed to decode its contents.
func NewDeserialization(cause error) *Error {
	return &Error{Kind: Deserialization, Err: cause}
}

// NewMetadataValidation reports that a cache's on-disk metadata sidecar
// disagrees with the metadata supplied by the caller.
func NewMetadataValidation(reason string) *Error {
	return &Error{Kind: MetadataValidation, Reason: reason}
}

// NewKeyMissing reports that Fetch was called for an unknown path.
func NewKeyMissing(path string) *Error {
	return &Error{Kind: KeyMissing, Path: path}
}

// Is reports whether err carries the given Kind. It allows callers to write
// herrors.Is(err, herrors.NotAVideo) instead of a manual type assertion.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
