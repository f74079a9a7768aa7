// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
)

const (
	// QUEUE_INITIAL_SIZE is the ring size allocated on the first Send.
	QUEUE_INITIAL_SIZE = 16
)

// Queue implements a circular FIFO of values.
// If Capacity is zero the ring grows without bound, otherwise Send fails
// with ErrChannelFull once Capacity values are waiting.
type Queue struct {
	Capacity int // Capacity in values, 0 for unbounded.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64
}

var _ Channel = (*Queue)(nil)

// Rewind empties the queue, keeping the allocated ring.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
	q.WriteIndex = 0
	q.Size = 0
	clear(q.Data)
}

// Len returns the number of values waiting in the queue.
func (q *Queue) Len() int {
	return q.Size
}

// Empty returns true if no values are waiting.
func (q *Queue) Empty() bool {
	return q.Size == 0
}

// grow doubles the ring, unwrapping the waiting values to the front.
func (q *Queue) grow() {
	size := len(q.Data) * 2
	if size == 0 {
		size = QUEUE_INITIAL_SIZE
	}
	if q.Capacity > 0 && size > q.Capacity {
		size = q.Capacity
	}

	data := make([]int64, size)
	n := 0
	for value := range q.Values() {
		data[n] = value
		n++
	}

	q.Data = data
	q.ReadIndex = 0
	q.WriteIndex = n % size
}

// Send appends a value to the back of the queue.
// Returns ErrChannelFull if a bounded queue is at capacity.
func (q *Queue) Send(value int64) (err error) {
	if q.Capacity > 0 && q.Size >= q.Capacity {
		err = ErrChannelFull
		return
	}

	if q.Size == len(q.Data) {
		q.grow()
	}

	q.Data[q.WriteIndex] = value

	q.WriteIndex++
	if q.WriteIndex == len(q.Data) {
		q.WriteIndex = 0
	}
	q.Size++

	return
}

// Receive removes the value at the front of the queue.
func (q *Queue) Receive() (value int64, ok bool) {
	if q.Size == 0 {
		return
	}

	value = q.Data[q.ReadIndex]
	ok = true

	q.ReadIndex++
	if q.ReadIndex == len(q.Data) {
		q.ReadIndex = 0
	}
	q.Size--

	return
}

// Values returns an iterator over the waiting values, front first.
func (q *Queue) Values() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		index := q.ReadIndex
		for range q.Size {
			if !yield(q.Data[index]) {
				return
			}
			index++
			if index == len(q.Data) {
				index = 0
			}
		}
	}
}
