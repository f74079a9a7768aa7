// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// ErrTickLimit is returned when a run exceeds its TickLimit.
	ErrTickLimit = errors.New(f("tick limit exceeded"))
)

// ErrRuntime indicates the thread and location of a runtime error.
type ErrRuntime struct {
	Thread int64
	LineNo int
	Ip     int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("thread %d line %d (ip %d) %v", err.Thread, err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
