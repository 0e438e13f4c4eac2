package vdconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/vhash"
)

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{Include: []string{"."}, Logger: (*logging.TestLogger)(t)}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, vhash.DefaultDCTSize, cfg.DCTSize)
	assert.Equal(t, vhash.DefaultHashSize, cfg.HashSize)
	assert.Equal(t, DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, DefaultCacheFile, cfg.CachePath)
	assert.Equal(t, DefaultSaveThreshold, cfg.SaveThreshold)
	assert.Greater(t, cfg.Workers, 0)
	assert.NotEmpty(t, cfg.OSFamily)
}

func TestValidateRequiresLogger(t *testing.T) {
	cfg := &Config{Include: []string{"."}}
	assert.ErrorIs(t, cfg.Validate(), errNoLogger)
}

func TestValidateRequiresInclude(t *testing.T) {
	cfg := &Config{Logger: (*logging.TestLogger)(t)}
	assert.ErrorIs(t, cfg.Validate(), errNoInclude)
}

func TestHashOptions(t *testing.T) {
	cfg := &Config{Include: []string{"."}, Logger: (*logging.TestLogger)(t)}
	require.NoError(t, cfg.Validate())

	opts := cfg.HashOptions()
	assert.Equal(t, cfg.DCTSize, opts.DCTSize)
	assert.Equal(t, cfg.HashSize, opts.HashSize)
	assert.Equal(t, cfg.DCTSize, opts.Sampling.FrameCount)
}

func TestCacheMetadata(t *testing.T) {
	cfg := &Config{Include: []string{"."}, Logger: (*logging.TestLogger)(t), DecoderBackend: "gocv"}
	require.NoError(t, cfg.Validate())

	md := cfg.CacheMetadata()
	assert.Equal(t, "gocv", md.DecoderBackend)
	assert.Equal(t, "letterbox", md.CropPolicy)
	assert.Equal(t, cfg.OSFamily, md.OSFamily)
}
