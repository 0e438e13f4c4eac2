/*
DESCRIPTION
  search.go implements the duration-bucketed pairwise duplicate search:
  self-mode (all-pairs, each hash matched at most once) and reference
  mode (every candidate matched against each reference).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package search implements vidhash's similarity engine: an O(n^2)-worst-
// case, duration-bucketed scan over packed perceptual hashes, grouping
// videos whose Hamming distance is within a caller-supplied tolerance.
package search

import (
	"errors"
	"sort"

	"github.com/ausocean/vidhash/vhash"
)

// ErrToleranceOutOfRange is returned when a caller supplies a tolerance
// outside [0, 1] (spec §6.4).
var ErrToleranceOutOfRange = errors.New("search: tolerance must be in [0, 1]")

// entry is one seeded hash plus the "already claimed by a group" flag the
// self-mode and consuming reference-mode scans use to ensure each hash is
// matched at most once.
type entry struct {
	value   vhash.VideoHash
	matched bool
}

// Threshold converts a tolerance in [0, 1] into an integer Hamming
// distance threshold for a hash of bitCount bits: round(tolerance *
// bitCount).
func Threshold(tolerance float64, bitCount int) int {
	return int(tolerance*float64(bitCount) + 0.5)
}

// seed builds a sorted entry slice from hashes, in the canonical
// (duration, path) order that makes search output deterministic.
func seed(hashes []vhash.VideoHash) []entry {
	entries := make([]entry, len(hashes))
	for i, h := range hashes {
		entries[i] = entry{value: h}
	}
	sort.Slice(entries, func(i, j int) bool { return vhash.Less(entries[i].value, entries[j].value) })
	return entries
}

// Search finds all-pairs duplicate groups among hashes within tolerance
// (a real number in [0, 1]). Each hash is matched into at most one group.
// A tolerance outside [0, 1] is rejected with ErrToleranceOutOfRange;
// once validated, the scan itself never fails.
func Search(hashes []vhash.VideoHash, tolerance float64) ([]MatchGroup, error) {
	if tolerance < 0 || tolerance > 1 {
		return nil, ErrToleranceOutOfRange
	}
	if len(hashes) == 0 {
		return nil, nil
	}

	entries := seed(hashes)
	threshold := thresholdFor(entries, tolerance)

	var groups []MatchGroup
	lhs := 0
	for {
		rhs := advanceRHS(entries, lhs)

		if lhs < rhs {
			entries[lhs].matched = true
			target := entries[lhs].value

			var dupes []string
			for i := lhs + 1; i < rhs; i++ {
				if entries[i].matched {
					continue
				}
				if vhash.Distance(target, entries[i].value) <= threshold {
					dupes = append(dupes, entries[i].value.SrcPath)
					entries[i].matched = true
				}
			}

			if len(dupes) > 0 {
				groups = append(groups, MatchGroup{Duplicates: append([]string{target.SrcPath}, dupes...)})
			}
		}

		next, ok := advanceLHS(entries, lhs)
		if !ok {
			break
		}
		lhs = next
	}

	reverseGroups(groups)
	return groups, nil
}

// advanceRHS advances the rhs cursor from lhs, skipping matched entries
// and including candidates whose duration is within 1.1x of entries[lhs]'s
// duration, stopping at the first entry outside the band or at the end.
func advanceRHS(entries []entry, lhs int) int {
	threshDuration := uint32(float64(entries[lhs].value.DurationSeconds) * 1.1)
	rhs := lhs
	for rhs < len(entries) {
		if entries[rhs].matched {
			rhs++
			continue
		}
		if entries[rhs].value.DurationSeconds > threshDuration {
			break
		}
		rhs++
	}
	return rhs
}

// advanceLHS finds the next unmatched index after lhs.
func advanceLHS(entries []entry, lhs int) (int, bool) {
	for i := lhs + 1; i < len(entries); i++ {
		if !entries[i].matched {
			return i, true
		}
	}
	return 0, false
}

func reverseGroups(groups []MatchGroup) {
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
}

// SearchWithReferences matches every candidate hash in cands against each
// reference hash in refs independently, within tolerance. If consume is
// true, a candidate matched against one reference cannot be matched
// against a later reference. Reference order is preserved in the output;
// references that matched nothing produce no group.
func SearchWithReferences(refs, cands []vhash.VideoHash, tolerance float64, consume bool) ([]MatchGroup, error) {
	if tolerance < 0 || tolerance > 1 {
		return nil, ErrToleranceOutOfRange
	}

	entries := seed(cands)
	threshold := thresholdFor(entries, tolerance)

	var groups []MatchGroup
	for _, ref := range refs {
		lo, hi := durationBand(entries, ref.DurationSeconds)

		var dupes []string
		for i := lo; i < hi; i++ {
			if entries[i].matched {
				continue
			}
			if vhash.Distance(ref, entries[i].value) <= threshold {
				dupes = append(dupes, entries[i].value.SrcPath)
				if consume {
					entries[i].matched = true
				}
			}
		}

		if len(dupes) > 0 {
			groups = append(groups, MatchGroup{Reference: ref.SrcPath, HasReference: true, Duplicates: dupes})
		}
	}
	return groups, nil
}

// durationBand returns the [lo, hi) index range of entries whose duration
// falls within [0.95*duration, 1.05*duration], via two partition-point
// queries over the sorted entries.
func durationBand(entries []entry, duration uint32) (lo, hi int) {
	lowBound := uint32(float64(duration) * 0.95)
	highBound := uint32(float64(duration) * 1.05)

	lo = sort.Search(len(entries), func(i int) bool { return entries[i].value.DurationSeconds >= lowBound })
	hi = sort.Search(len(entries), func(i int) bool { return entries[i].value.DurationSeconds > highBound })
	return lo, hi
}

// thresholdFor derives the integer Hamming distance threshold from the
// bit count of the seeded hashes. With no entries the threshold is 0;
// Search returns before reaching this on an empty set, and
// SearchWithReferences then finds no groups because every duration band
// is empty.
func thresholdFor(entries []entry, tolerance float64) int {
	if len(entries) == 0 {
		return 0
	}
	return Threshold(tolerance, entries[0].value.Bits.NumBits)
}
