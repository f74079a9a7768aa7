package io

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_Empty(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	assert.True(q.Empty())
	assert.Equal(0, q.Len())

	value, ok := q.Receive()
	assert.False(ok)
	assert.Equal(int64(0), value)
}

func TestQueue_Fifo(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	for _, value := range []int64{1, 2, -3} {
		assert.NoError(q.Send(value))
	}
	assert.Equal(3, q.Len())
	assert.Equal([]int64{1, 2, -3}, slices.Collect(q.Values()))

	for _, expected := range []int64{1, 2, -3} {
		value, ok := q.Receive()
		assert.True(ok)
		assert.Equal(expected, value)
	}
	assert.True(q.Empty())
}

func TestQueue_Grow(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}

	// Offset the ring so growth has to unwrap it.
	for n := range QUEUE_INITIAL_SIZE / 2 {
		assert.NoError(q.Send(int64(-n)))
	}
	for range QUEUE_INITIAL_SIZE / 2 {
		_, ok := q.Receive()
		assert.True(ok)
	}

	var expected []int64
	for n := range QUEUE_INITIAL_SIZE*3 + 1 {
		expected = append(expected, int64(n))
		assert.NoError(q.Send(int64(n)))
	}
	assert.Equal(len(expected), q.Len())
	assert.Equal(expected, slices.Collect(q.Values()))

	var received []int64
	for value, ok := q.Receive(); ok; value, ok = q.Receive() {
		received = append(received, value)
	}
	assert.Equal(expected, received)
}

func TestQueue_Capacity(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Capacity: 2}
	assert.NoError(q.Send(10))
	assert.NoError(q.Send(20))
	assert.Equal(ErrChannelFull, q.Send(30))
	assert.Equal(2, q.Len())

	value, ok := q.Receive()
	assert.True(ok)
	assert.Equal(int64(10), value)

	assert.NoError(q.Send(30))
	assert.Equal([]int64{20, 30}, slices.Collect(q.Values()))
}

func TestQueue_Rewind(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	assert.NoError(q.Send(1))
	assert.NoError(q.Send(2))
	q.Receive()

	q.Rewind()
	assert.True(q.Empty())
	assert.Empty(slices.Collect(q.Values()))

	assert.NoError(q.Send(7))
	value, ok := q.Receive()
	assert.True(ok)
	assert.Equal(int64(7), value)
}

func TestQueue_ValuesBreak(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	for n := range 5 {
		assert.NoError(q.Send(int64(n)))
	}

	var seen []int64
	for value := range q.Values() {
		seen = append(seen, value)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal([]int64{0, 1}, seen)
	assert.Equal(5, q.Len())
}
