// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs duet programs, either as a single thread that
// recovers the last sent value, or as two cooperating threads.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/internal"
)

const (
	DUET_THREADS     = 2 // Threads in a duet.
	DUET_OBSERVED_ID = 1 // Thread whose send count is the duet result.
)

var _emulator_defines = map[string]string{
	"DUET_THREADS":     fmt.Sprintf("%d", DUET_THREADS),
	"DUET_OBSERVED_ID": fmt.Sprintf("%d", DUET_OBSERVED_ID),
}

// Defines returns an iterator over all of the defines
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Runner is a program runner that executes one instruction per tick.
type Runner interface {
	Reset() error
	Tick() (done bool, err error)
}

var _ Runner = (*Single)(nil)
var _ Runner = (*Duet)(nil)

// run resets the runner, and ticks until done.
func run(r Runner) (err error) {
	err = r.Reset()
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = r.Tick()
		if err != nil {
			return
		}
	}

	return
}

// runtimeError locates err at ip of the thread.
func runtimeError(prog *cpu.Program, th *cpu.Thread, ip int, err error) error {
	return &ErrRuntime{Thread: th.Id, LineNo: prog.LineNo(ip), Ip: ip, Err: err}
}
