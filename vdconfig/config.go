/*
DESCRIPTION
  config.go defines Config, the top-level configuration for a duplicate
  video finder run: hashing options, search tolerance, cache location and
  file projection.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vdconfig contains the configuration settings for a duplicate
// video finder run.
package vdconfig

import (
	"runtime"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/vhash"
	"github.com/ausocean/vidhash/vhash/crop"
	"github.com/ausocean/vidhash/vhash/sampling"
)

// Defaults for fields left unset by the caller.
const (
	DefaultTolerance     = 0.15
	DefaultSaveThreshold = 16
	DefaultCacheFile     = "vidhash_cache.gob"
)

// Config provides parameters relevant to a duplicate video finder run. A
// new Config must be passed through Validate before use; Validate
// defaults any zero-valued field and logs the substitution.
type Config struct {
	// Include lists directories to search for video files.
	Include []string

	// Exclude lists directories to omit, even if nested under an Include
	// directory.
	Exclude []string

	// ExcludeExts lists file extensions (with or without a leading dot)
	// to omit from the search.
	ExcludeExts []string

	// DCTSize is the side length of the cube of frames fed to the 3-D
	// DCT. Defaults to vhash.DefaultDCTSize.
	DCTSize int

	// HashSize is the side length of the retained low-frequency
	// sub-cube, and so determines the hash's bit count. Defaults to
	// vhash.DefaultHashSize.
	HashSize int

	// CropPolicy selects whether letterbox bars are detected and
	// cropped before resampling. Defaults to crop.Letterbox.
	CropPolicy crop.Policy

	// Tolerance is the normalized Hamming distance, in [0, 1], at or
	// below which two hashes are considered a match. Defaults to
	// DefaultTolerance.
	Tolerance float64

	// CachePath is the location of the persistent hash cache file.
	// Defaults to DefaultCacheFile in the current directory.
	CachePath string

	// SaveThreshold is the number of dirty cache entries that triggers
	// an automatic save. Defaults to DefaultSaveThreshold.
	SaveThreshold int

	// Workers is the number of concurrent hashing workers. Defaults to
	// runtime.NumCPU().
	Workers int

	// DecoderBackend names the decoder used to produce frames, recorded
	// in cache metadata. Set by the caller to the FrameSource
	// implementation's backend name.
	DecoderBackend string

	// OSFamily identifies the host OS family, recorded in cache
	// metadata so a cache built on one platform is not silently reused
	// on another. Defaults to runtime.GOOS.
	OSFamily string

	// Logger receives diagnostic output. It has no default: Validate
	// fails if it is nil.
	Logger logging.Logger
}

// Validate defaults any zero-valued field, logging each substitution via
// LogInvalidField, and reports an error if Include is empty or Logger is
// nil (no sensible default exists for either).
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errNoLogger
	}
	if len(c.Include) == 0 {
		return errNoInclude
	}

	if c.DCTSize <= 0 {
		c.LogInvalidField("DCTSize", vhash.DefaultDCTSize)
		c.DCTSize = vhash.DefaultDCTSize
	}
	if c.HashSize <= 0 {
		c.LogInvalidField("HashSize", vhash.DefaultHashSize)
		c.HashSize = vhash.DefaultHashSize
	}
	if c.Tolerance <= 0 {
		c.LogInvalidField("Tolerance", DefaultTolerance)
		c.Tolerance = DefaultTolerance
	}
	if c.CachePath == "" {
		c.LogInvalidField("CachePath", DefaultCacheFile)
		c.CachePath = DefaultCacheFile
	}
	if c.SaveThreshold <= 0 {
		c.LogInvalidField("SaveThreshold", DefaultSaveThreshold)
		c.SaveThreshold = DefaultSaveThreshold
	}
	if c.Workers <= 0 {
		c.LogInvalidField("Workers", runtime.NumCPU())
		c.Workers = runtime.NumCPU()
	}
	if c.OSFamily == "" {
		c.LogInvalidField("OSFamily", runtime.GOOS)
		c.OSFamily = runtime.GOOS
	}
	return nil
}

// LogInvalidField logs that field was unset or invalid and has been
// defaulted to def.
func (c *Config) LogInvalidField(field string, def interface{}) {
	c.Logger.Info(field+" bad or unset, defaulting", field, def)
}

// HashOptions derives vhash.Options from the configured DCT size, hash
// size and crop policy.
func (c *Config) HashOptions() vhash.Options {
	return vhash.Options{
		DCTSize:    c.DCTSize,
		HashSize:   c.HashSize,
		CropPolicy: c.CropPolicy,
		Sampling:   sampling.Default(c.DCTSize),
		Logger:     c.Logger,
	}
}
