// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/duet/cpu"
)

// Duet runs two threads of the same program, with thread ids 0 and 1
// loaded into register p. A snd delivers to the other thread's queue, and a
// rcv on an empty queue blocks until the other thread sends.
//
// Only one thread is active at a time. The active thread runs until it
// blocks or finishes, then hands off to the other thread. The run ends when
// neither thread can run.
type Duet struct {
	Verbose   bool         // If set, enables verbose logging.
	Program   *cpu.Program // Reference to the running program.
	TickLimit int          // If non-zero, fail after this many ticks.
	Capacity  int          // If non-zero, bounds each thread's queue.

	Thread [DUET_THREADS]cpu.Thread // Thread contexts, by id.

	active   int  // Index of the active thread.
	deadlock bool // Set if the run ended with a blocked thread.
	done     bool // Set when the run has ended.
}

// NewDuet creates a duet runner for a program.
func NewDuet(prog *cpu.Program) (d *Duet) {
	d = &Duet{
		Program: prog,
	}

	for n := range d.Thread {
		d.Thread[n].Reset(int64(n))
	}

	return
}

// Reset the runner state. Thread 0 becomes the active thread.
func (d *Duet) Reset() (err error) {
	err = d.Program.Validate()
	if err != nil {
		return
	}

	for n := range d.Thread {
		th := &d.Thread[n]
		th.Verbose = d.Verbose
		th.Queue.Capacity = d.Capacity
		th.Reset(int64(n))
	}

	d.active = 0
	d.deadlock = false
	d.done = false

	return
}

// Active returns the thread that owns the current turn.
func (d *Duet) Active() *cpu.Thread {
	return &d.Thread[d.active]
}

// Sleeping returns the thread that is waiting for its turn.
func (d *Duet) Sleeping() *cpu.Thread {
	return &d.Thread[1-d.active]
}

// Sent returns the count of values sent by a thread.
func (d *Duet) Sent(id int) uint64 {
	return d.Thread[id].Sent
}

// Deadlocked returns true if the run ended with a thread blocked on an
// empty queue, rather than with both threads leaving the program.
func (d *Duet) Deadlocked() bool {
	return d.deadlock
}

// Ticks returns the total ticks of both threads since a reset.
func (d *Duet) Ticks() (ticks int) {
	for _, th := range d.Thread {
		ticks += th.Ticks
	}
	return
}

// Tick executes a single instruction on the active thread, then decides
// which thread runs next.
func (d *Duet) Tick() (done bool, err error) {
	if d.done {
		done = true
		return
	}

	active := d.Active()
	sleeping := d.Sleeping()

	ip := active.Ip
	defer func() {
		if err != nil {
			err = runtimeError(d.Program, active, ip, err)
		}
	}()

	if d.TickLimit > 0 && d.Ticks() >= d.TickLimit {
		err = ErrTickLimit
		return
	}

	code, ok := d.Program.Fetch(ip)
	if !ok {
		active.Finished = true
	} else {
		offset := int64(1)

		switch code.Op {
		case cpu.OP_RCV:
			active.Ticks++
			value, ok := active.Queue.Receive()
			if ok {
				if d.Verbose {
					log.Printf("duet: thread %d: %03d: %v <- %d", active.Id, ip, code, value)
				}
				// An immediate operand drops the value on the floor.
				dst := active.Target(code.Args[0])
				if dst != nil {
					*dst = value
				}
			} else {
				if d.Verbose {
					log.Printf("duet: thread %d: %03d: %v blocked", active.Id, ip, code)
				}
				active.Blocked = true
			}
		case cpu.OP_SND:
			offset, err = active.Execute(code, &sleeping.Queue)
			if err != nil {
				return
			}
			sleeping.Blocked = false
		default:
			offset, err = active.Execute(code, &sleeping.Queue)
			if err != nil {
				return
			}
		}

		if !active.Blocked {
			active.Advance(offset, d.Program.Len())
		}
	}

	if !active.Blocked && !active.Finished {
		return
	}

	if sleeping.Blocked || sleeping.Finished {
		d.deadlock = active.Blocked || sleeping.Blocked
		active.Finished = true
		sleeping.Finished = true
		d.done = true
		done = true

		if d.Verbose {
			log.Printf("duet: done after %d ticks, deadlock %v", d.Ticks(), d.deadlock)
		}
		return
	}

	if d.Verbose {
		log.Printf("duet: thread %d %v, switch to thread %d", active.Id, active.State(), sleeping.Id)
	}
	d.active = 1 - d.active

	return
}

// Result returns the send count of the observed thread.
func (d *Duet) Result() uint64 {
	return d.Sent(DUET_OBSERVED_ID)
}

// Run resets the runner and executes both threads until neither can run.
// Returns the send count of the observed thread.
func (d *Duet) Run() (sent uint64, err error) {
	err = run(d)
	if err != nil {
		return
	}

	sent = d.Result()
	return
}
