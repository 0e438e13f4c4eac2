package herrors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrap(t *testing.T) {
	wrapped := errors.New("disk full")
	err := NewCacheFileIO("/tmp/x", wrapped)

	assert.ErrorIs(t, err, wrapped)
	assert.True(t, Is(err, CacheFileIO))
	assert.False(t, Is(err, Serialization))
}

func TestErrorMessageIncludesPathAndKind(t *testing.T) {
	err := NewNotAVideo("clip.mov", errors.New("bad header"))
	assert.Contains(t, err.Error(), "clip.mov")
	assert.Contains(t, err.Error(), "not_a_video")
}

func TestTruncateLongReason(t *testing.T) {
	long := strings.Repeat("a", maxReasonRunes+50)
	err := NewVideoProcessing("clip.mov", long)

	var he *Error
	assert.ErrorAs(t, err, &he)
	assert.LessOrEqual(t, len([]rune(he.Reason)), maxReasonRunes)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_a_video", NotAVideo.String())
	assert.Equal(t, "key_missing", KeyMissing.String())
}

func TestIsFalseForNonHerror(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), CacheFileIO))
}
