package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAt(t *testing.T) {
	b := New(130)
	b.Set(0)
	b.Set(64)
	b.Set(129)

	assert.True(t, b.At(0))
	assert.True(t, b.At(64))
	assert.True(t, b.At(129))
	assert.False(t, b.At(1))
	assert.Len(t, b.Lanes, 3)
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(64)
	b.Set(5)

	c := b.Clone()
	c.Set(6)

	assert.True(t, b.At(5))
	assert.False(t, b.At(6), "mutating the clone must not affect the original")
	assert.True(t, c.At(6))
}

func TestEqual(t *testing.T) {
	a := New(64)
	a.Set(1)
	b := New(64)
	b.Set(1)

	assert.True(t, Equal(a, b))

	b.Set(2)
	assert.False(t, Equal(a, b))
}

func TestHammingDistance(t *testing.T) {
	a := New(8)
	b := New(8)

	assert.Equal(t, 0, HammingDistance(a, b))

	a.Set(0)
	a.Set(1)
	b.Set(1)
	b.Set(2)

	assert.Equal(t, 2, HammingDistance(a, b))
}
