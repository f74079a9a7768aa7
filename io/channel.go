// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the message channels that connect duet threads.
// A Queue is the FIFO inbound mailbox of a thread in a two-thread run,
// and a Latch holds the last value sent by a single-thread run.
package io

import (
	"iter"
)

// Channel defines the interface for all message channels.
type Channel interface {
	// Rewind resets the channel to its initial, empty state.
	Rewind()
	// Send delivers a value to the channel.
	Send(value int64) error
	// Receive takes the next value from the channel.
	Receive() (value int64, ok bool)
	// Len returns the number of values waiting to be received.
	Len() int
	// Values iterates over the waiting values without consuming them.
	Values() iter.Seq[int64]
}
