package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/vdconfig"
	"github.com/ausocean/vidhash/vhash"
	"github.com/ausocean/vidhash/vhash/bitset"
)

// fakeBuild returns a hash whose single set bit is determined by the file
// name ("one.mp4" and "one-dup.mp4" share bit 0, every other name gets
// bit 1), so tests can control which files appear as duplicates without
// touching a real decoder.
func fakeBuild(path string) (vhash.VideoHash, error) {
	b := bitset.New(8)
	switch filepath.Base(path) {
	case "one.mp4", "one-dup.mp4":
		b.Set(0)
	default:
		b.Set(1)
	}
	return vhash.VideoHash{SrcPath: path, DurationSeconds: 10, Bits: b}, nil
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestFinderRunFindsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "one.mp4")
	writeVideo(t, dir, "one-dup.mp4")
	writeVideo(t, dir, "unique.mp4")

	cfg := &vdconfig.Config{
		Include:   []string{dir},
		CachePath: filepath.Join(t.TempDir(), "cache.gob"),
		Tolerance: 0.1,
		Logger:    (*logging.TestLogger)(t),
	}

	f, err := New(cfg, fakeBuild)
	require.NoError(t, err)

	groups, errs, err := f.Run(false)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, groups, 1)
	assert.ElementsMatch(t, []string{"one.mp4", "one-dup.mp4"},
		basenames(groups[0].Duplicates))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestFinderRunAgainstReferences(t *testing.T) {
	refDir := t.TempDir()
	candDir := t.TempDir()

	ref := writeVideo(t, refDir, "one.mp4")
	dup := writeVideo(t, candDir, "one-dup.mp4")
	other := writeVideo(t, candDir, "unique.mp4")

	cfg := &vdconfig.Config{
		Include:   []string{refDir, candDir},
		CachePath: filepath.Join(t.TempDir(), "cache.gob"),
		Tolerance: 0.1,
		Logger:    (*logging.TestLogger)(t),
	}

	f, err := New(cfg, fakeBuild)
	require.NoError(t, err)

	groups, errs, err := f.RunAgainstReferences([]string{ref}, []string{dup, other}, true, false)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, groups, 1)
	assert.Equal(t, ref, groups[0].Reference)
	assert.Equal(t, []string{dup}, groups[0].Duplicates)
}
