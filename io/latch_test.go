package io

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatch(t *testing.T) {
	assert := assert.New(t)

	l := &Latch{}
	assert.Equal(0, l.Len())
	value, ok := l.Receive()
	assert.False(ok)
	assert.Equal(int64(0), value)
	assert.Empty(slices.Collect(l.Values()))

	assert.NoError(l.Send(4))
	assert.NoError(l.Send(-9))
	assert.Equal(1, l.Len())

	// Receive does not consume.
	for range 2 {
		value, ok = l.Receive()
		assert.True(ok)
		assert.Equal(int64(-9), value)
	}
	assert.Equal([]int64{-9}, slices.Collect(l.Values()))

	l.Rewind()
	_, ok = l.Receive()
	assert.False(ok)
}
