// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/io"
)

// Single runs a program as one thread. Sent values are latched, and the
// first rcv of a non-zero value recovers the last one sent.
type Single struct {
	Verbose   bool         // If set, enables verbose logging.
	Program   *cpu.Program // Reference to the running program.
	TickLimit int          // If non-zero, fail after this many ticks.

	Thread    cpu.Thread // Thread context.
	Sound     io.Latch   // Last sent value.
	Recovered bool       // Set when a rcv recovered a value.
}

// NewSingle creates a single thread runner for a program.
func NewSingle(prog *cpu.Program) (s *Single) {
	s = &Single{
		Program: prog,
	}

	s.Thread.Reset(0)

	return
}

// Reset the runner state.
func (s *Single) Reset() (err error) {
	err = s.Program.Validate()
	if err != nil {
		return
	}

	s.Thread.Verbose = s.Verbose
	s.Thread.Reset(0)
	s.Sound.Rewind()
	s.Recovered = false

	return
}

// Ticks returns the total ticks since a reset.
func (s *Single) Ticks() int {
	return s.Thread.Ticks
}

// Tick executes a single instruction.
func (s *Single) Tick() (done bool, err error) {
	th := &s.Thread
	th.Verbose = s.Verbose

	if th.Finished {
		done = true
		return
	}

	ip := th.Ip
	defer func() {
		if err != nil {
			err = runtimeError(s.Program, th, ip, err)
		}
	}()

	if s.TickLimit > 0 && th.Ticks >= s.TickLimit {
		err = ErrTickLimit
		return
	}

	code, ok := s.Program.Fetch(ip)
	if !ok {
		th.Finished = true
		done = true
		return
	}

	offset := int64(1)

	switch code.Op {
	case cpu.OP_RCV:
		th.Ticks++
		if th.Value(code.Args[0]) != 0 {
			if s.Verbose {
				value, _ := s.Sound.Receive()
				log.Printf("single: %03d: %v recovered %d", ip, code, value)
			}
			s.Recovered = true
			th.Finished = true
			done = true
			return
		}
	default:
		offset, err = th.Execute(code, &s.Sound)
		if err != nil {
			return
		}
	}

	if !th.Advance(offset, s.Program.Len()) {
		done = true
	}

	return
}

// Result returns the recovered value. If the program ran off its end
// without recovering, ok is false.
func (s *Single) Result() (value int64, ok bool) {
	if !s.Recovered {
		return
	}

	value, _ = s.Sound.Receive()
	ok = true
	return
}

// Run resets the runner and executes the program until it recovers a
// value or runs off its end.
func (s *Single) Run() (value int64, ok bool, err error) {
	err = run(s)
	if err != nil {
		return
	}

	value, ok = s.Result()
	return
}
