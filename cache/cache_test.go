package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/vhash"
	"github.com/ausocean/vidhash/vhash/bitset"
)

func testMetadata() Metadata {
	return Metadata{OSFamily: "linux", DecoderBackend: "gocv", CropPolicy: "letterbox", SkipForwardSeconds: 30, CacheVersion: CurrentCacheVersion}
}

func countingBuild(calls *atomic.Int64) BuildFunc {
	return func(path string) (vhash.VideoHash, error) {
		calls.Add(1)
		return vhash.VideoHash{SrcPath: path, DurationSeconds: 10, Bits: bitset.New(8)}, nil
	}
}

func failingBuild(path string) (vhash.VideoHash, error) {
	return vhash.VideoHash{}, errors.New("boom")
}

func TestOpenCreatesEmptyCache(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int64

	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	assert.Empty(t, c.CachedPaths())
	assert.FileExists(t, filepath.Join(dir, "cache.metadata.txt"))
}

func TestFetchUnknownPathIsKeyMissing(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int64
	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	_, err = c.Fetch("nope.mp4")
	assert.Error(t, err)
}

func TestFetchOrUpdateBuildsOnceThenReusesFreshEntry(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	var calls atomic.Int64
	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	found, entry, err := c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, entry.Err)
	assert.EqualValues(t, 1, calls.Load())

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load(), "an unchanged file should not be rebuilt")
}

func TestFetchOrUpdateRebuildsOnStaleMtime(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	var calls atomic.Int64
	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(videoPath, future, future))

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchOrUpdateRemovesMissingFile(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	var calls atomic.Int64
	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(videoPath))

	found, _, err := c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, c.CachedPaths())
}

func TestRefreshCollectsBuildErrors(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, failingBuild, (*logging.TestLogger)(t))
	require.NoError(t, err)

	errs := c.Refresh([]string{videoPath}, false)
	assert.Len(t, errs, 1)
	assert.Contains(t, c.ErrorPaths(), videoPath)
	assert.Empty(t, c.CachedPaths())
}

func TestSaveAndReopenRoundTrips(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))
	cachePath := filepath.Join(dir, "cache.gob")

	var calls atomic.Int64
	c, err := Open(cachePath, testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	require.NoError(t, c.Save())

	reopened, err := Open(cachePath, testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)
	assert.Equal(t, []string{videoPath}, reopened.CachedPaths())
}

func TestOpenRejectsMetadataMismatch(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.gob")
	var calls atomic.Int64

	c, err := Open(cachePath, testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)
	require.NoError(t, c.Save())

	other := testMetadata()
	other.DecoderBackend = "ffmpeg"
	_, err = Open(cachePath, other, 16, countingBuild(&calls), (*logging.TestLogger)(t))
	assert.Error(t, err)
}

func TestForceUpdateAlwaysRebuilds(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	var calls atomic.Int64
	c, err := Open(filepath.Join(dir, "cache.gob"), testMetadata(), 16, countingBuild(&calls), (*logging.TestLogger)(t))
	require.NoError(t, err)

	_, _, err = c.FetchOrUpdate(videoPath)
	require.NoError(t, err)
	_, _, err = c.ForceUpdate(videoPath)
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
}
