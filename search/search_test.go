package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/vidhash/vhash"
	"github.com/ausocean/vidhash/vhash/bitset"
)

func hashOf(path string, duration uint32, bits ...int) vhash.VideoHash {
	b := bitset.New(64)
	for _, k := range bits {
		b.Set(k)
	}
	return vhash.VideoHash{SrcPath: path, DurationSeconds: duration, Bits: b}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 0, Threshold(0, 64))
	assert.Equal(t, 32, Threshold(0.5, 64))
	assert.Equal(t, 64, Threshold(1, 64))
}

func TestSearchRejectsOutOfRangeTolerance(t *testing.T) {
	_, err := Search(nil, 1.5)
	assert.ErrorIs(t, err, ErrToleranceOutOfRange)

	_, err = Search(nil, -0.1)
	assert.ErrorIs(t, err, ErrToleranceOutOfRange)
}

func TestSearchEmptyInput(t *testing.T) {
	groups, err := Search(nil, 0.1)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSearchFindsSelfDuplicates(t *testing.T) {
	a := hashOf("a.mp4", 10, 0, 1, 2)
	b := hashOf("b.mp4", 10, 0, 1, 3) // 2 bits different (bits 2 and 3)
	c := hashOf("c.mp4", 100, 0, 1, 2) // very different duration, never compared to a/b

	groups, err := Search([]vhash.VideoHash{a, b, c}, 0.05)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.ElementsMatch(t, []string{"a.mp4", "b.mp4"}, groups[0].Duplicates)
	assert.False(t, groups[0].HasReference)
}

func TestSearchEachHashMatchedAtMostOnce(t *testing.T) {
	a := hashOf("a.mp4", 10, 0)
	b := hashOf("b.mp4", 10, 0)
	c := hashOf("c.mp4", 10, 0)

	groups, err := Search([]vhash.VideoHash{a, b, c}, 0.05)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Duplicates, 3)
}

func TestSearchWithReferencesRejectsOutOfRangeTolerance(t *testing.T) {
	_, err := SearchWithReferences(nil, nil, 2, false)
	assert.ErrorIs(t, err, ErrToleranceOutOfRange)
}

func TestSearchWithReferencesMatchesWithinDurationBand(t *testing.T) {
	ref := hashOf("ref.mp4", 100, 0, 1)
	close_ := hashOf("close.mp4", 100, 0, 1, 2) // within band, 1 bit off
	far := hashOf("far.mp4", 1000, 0, 1)        // outside duration band

	groups, err := SearchWithReferences([]vhash.VideoHash{ref}, []vhash.VideoHash{close_, far}, 0.05, false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "ref.mp4", groups[0].Reference)
	assert.Equal(t, []string{"close.mp4"}, groups[0].Duplicates)
}

func TestSearchWithReferencesConsume(t *testing.T) {
	candidate := hashOf("dup.mp4", 100, 0)
	ref1 := hashOf("ref1.mp4", 100, 0)
	ref2 := hashOf("ref2.mp4", 100, 0)

	groups, err := SearchWithReferences([]vhash.VideoHash{ref1, ref2}, []vhash.VideoHash{candidate}, 0.1, true)
	require.NoError(t, err)
	require.Len(t, groups, 1, "consume should prevent the candidate from matching a second reference")
	assert.Equal(t, "ref1.mp4", groups[0].Reference)
}

func TestSearchWithReferencesWithoutConsume(t *testing.T) {
	candidate := hashOf("dup.mp4", 100, 0)
	ref1 := hashOf("ref1.mp4", 100, 0)
	ref2 := hashOf("ref2.mp4", 100, 0)

	groups, err := SearchWithReferences([]vhash.VideoHash{ref1, ref2}, []vhash.VideoHash{candidate}, 0.1, false)
	require.NoError(t, err)
	assert.Len(t, groups, 2, "without consume the candidate can match every reference")
}
