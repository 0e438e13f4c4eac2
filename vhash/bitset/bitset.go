/*
DESCRIPTION
  bitset.go provides Bits, a fixed-length packed bit vector used to store
  a quantized perceptual hash, plus Hamming distance over it.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitset implements the packed bit vector (hash/quantizer output,
// spec §4.6/§6.3) and the Hamming distance metric over it.
package bitset

import "math/bits"

// Bits is a fixed-length bit vector packed into 64-bit lanes, zero-padded
// in the unused tail. NumBits is the logical length; len(Lanes) is always
// ceil(NumBits/64).
type Bits struct {
	NumBits int
	Lanes   []uint64
}

// New allocates a zeroed Bits of the given logical bit length.
func New(numBits int) Bits {
	return Bits{NumBits: numBits, Lanes: make([]uint64, laneCount(numBits))}
}

func laneCount(numBits int) int {
	return (numBits + 63) / 64
}

// Set sets bit k to 1. k must be in [0, NumBits).
func (b Bits) Set(k int) {
	b.Lanes[k/64] |= 1 << uint(k%64)
}

// At reports whether bit k is set.
func (b Bits) At(k int) bool {
	return b.Lanes[k/64]&(1<<uint(k%64)) != 0
}

// Clone returns an independent copy of b.
func (b Bits) Clone() Bits {
	lanes := make([]uint64, len(b.Lanes))
	copy(lanes, b.Lanes)
	return Bits{NumBits: b.NumBits, Lanes: lanes}
}

// Equal reports whether a and b have the same logical length and content.
func Equal(a, b Bits) bool {
	if a.NumBits != b.NumBits || len(a.Lanes) != len(b.Lanes) {
		return false
	}
	for i := range a.Lanes {
		if a.Lanes[i] != b.Lanes[i] {
			return false
		}
	}
	return true
}

// HammingDistance returns the number of differing bits between a and b:
// the popcount of the XOR of their lanes. a and b must have the same
// number of lanes.
func HammingDistance(a, b Bits) int {
	var dist int
	for i := range a.Lanes {
		dist += bits.OnesCount64(a.Lanes[i] ^ b.Lanes[i])
	}
	return dist
}
