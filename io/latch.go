// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
)

// Latch holds the most recently sent value.
// Receive does not consume the value, a latch stays loaded until Rewind.
type Latch struct {
	Value  int64
	Loaded bool
}

var _ Channel = (*Latch)(nil)

// Rewind unloads the latch.
func (l *Latch) Rewind() {
	l.Value = 0
	l.Loaded = false
}

// Send replaces the latched value.
func (l *Latch) Send(value int64) (err error) {
	l.Value = value
	l.Loaded = true
	return
}

// Receive returns the latched value, and if any value was ever sent.
func (l *Latch) Receive() (value int64, ok bool) {
	return l.Value, l.Loaded
}

// Len returns 1 if the latch is loaded.
func (l *Latch) Len() int {
	if l.Loaded {
		return 1
	}
	return 0
}

// Values iterates over the latched value, if any.
func (l *Latch) Values() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if l.Loaded {
			yield(l.Value)
		}
	}
}
