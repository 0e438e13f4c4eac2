/*
DESCRIPTION
  metadata.go defines Metadata, the cache sidecar gate that ensures a
  reopened cache was built with the same hashing options as the ones
  supplied now.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package cache implements the mtime-indexed persistent hash cache (spec
// §4.9) that guards the expensive hashing step.
package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/vidhash/herrors"
)

// Metadata identifies the configuration a cache was built under. On
// reopen it must match the caller-supplied Metadata bit-for-bit, or the
// cache is rejected rather than silently rebuilt.
type Metadata struct {
	OSFamily           string
	DecoderBackend     string
	CropPolicy         string
	SkipForwardSeconds float64
	CacheVersion       uint64
}

// CurrentCacheVersion is bumped whenever the on-disk cache format
// changes in a way that requires invalidating old caches.
const CurrentCacheVersion = 1

// toLine renders m as the single-line, comma-separated format spec §6.2
// requires.
func (m Metadata) toLine() string {
	return fmt.Sprintf("%s,%s,%s,%s,%d",
		m.OSFamily, m.DecoderBackend, m.CropPolicy,
		strconv.FormatFloat(m.SkipForwardSeconds, 'g', -1, 64),
		m.CacheVersion)
}

// parseMetadata parses the single-line sidecar format.
func parseMetadata(line string) (Metadata, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 5 {
		return Metadata{}, herrors.NewDeserialization(fmt.Errorf("cache metadata: expected 5 fields, got %d", len(fields)))
	}

	skip, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Metadata{}, herrors.NewDeserialization(fmt.Errorf("cache metadata: bad skip_forward field: %w", err))
	}
	version, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return Metadata{}, herrors.NewDeserialization(fmt.Errorf("cache metadata: bad cache_version field: %w", err))
	}

	return Metadata{
		OSFamily:           fields[0],
		DecoderBackend:     fields[1],
		CropPolicy:         fields[2],
		SkipForwardSeconds: skip,
		CacheVersion:       version,
	}, nil
}

// matches reports whether m and other agree on every field.
func (m Metadata) matches(other Metadata) bool {
	return m == other
}
