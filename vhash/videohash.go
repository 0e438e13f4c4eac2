/*
DESCRIPTION
  videohash.go defines VideoHash, the immutable (path, duration, bits)
  tuple produced by Hash, plus the Hamming-distance-based comparisons
  used by the search engine.

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
	"sort"

	"github.com/ausocean/vidhash/vhash/bitset"
)

// VideoHash is a perceptual fingerprint of a video: its source path, its
// duration in whole seconds (truncated), and the quantized bit vector produced by
// the DCT hash pipeline. It is immutable once constructed.
type VideoHash struct {
	SrcPath         string
	DurationSeconds uint32
	Bits            bitset.Bits
}

// Distance returns the Hamming distance between a and b's bit vectors.
func Distance(a, b VideoHash) int {
	return bitset.HammingDistance(a.Bits, b.Bits)
}

// NormalizedDistance returns Distance(a, b) divided by the hash's bit
// count, always in [0, 1].
func NormalizedDistance(a, b VideoHash) float64 {
	if a.Bits.NumBits == 0 {
		return 0
	}
	return float64(Distance(a, b)) / float64(a.Bits.NumBits)
}

// Equal reports whether a and b have equal bits and duration, ignoring
// path.
func Equal(a, b VideoHash) bool {
	return a.DurationSeconds == b.DurationSeconds && bitset.Equal(a.Bits, b.Bits)
}

// Less orders hashes by (DurationSeconds, SrcPath), the ordering the
// search engine requires for deterministic, duration-bucketed scanning.
func Less(a, b VideoHash) bool {
	if a.DurationSeconds != b.DurationSeconds {
		return a.DurationSeconds < b.DurationSeconds
	}
	return a.SrcPath < b.SrcPath
}

// SortHashes sorts hashes in place by (DurationSeconds, SrcPath),
// ascending. This is the canonical order search.Search and
// search.SearchWithReferences rely on for deterministic output.
func SortHashes(hashes []VideoHash) {
	sort.Slice(hashes, func(i, j int) bool { return Less(hashes[i], hashes[j]) })
}
