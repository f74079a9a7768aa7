// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/duet/io"
)

// Channel is a message channel interface.
type Channel io.Channel

// ThreadState is the scheduling state of a thread.
type ThreadState int

//go:generate go tool stringer -linecomment -type=ThreadState
const (
	THREAD_RUNNING  = ThreadState(0) // running
	THREAD_BLOCKED  = ThreadState(1) // blocked
	THREAD_FINISHED = ThreadState(2) // finished
)

// Thread is the execution context of one program instance.
type Thread struct {
	Verbose bool // Set to enable verbose logging.

	Id       int64     // Thread id, loaded into register p on reset.
	Ip       int       // Current instruction pointer.
	Register Registers // Register bank.
	Queue    io.Queue  // Inbound message queue.
	Sent     uint64    // Count of values sent.
	Blocked  bool      // Waiting on an empty queue.
	Finished bool      // Will never execute again.

	Ticks int // Instructions executed.
}

// Reset the thread state.
//   - Clears the registers, and loads the thread id into register p.
//   - Empties the inbound queue.
//   - Zeros the statistics counters.
func (th *Thread) Reset(id int64) {
	th.Id = id
	th.Ip = 0
	th.Register.Reset()
	*th.Register.Ref(REGISTER_ID) = id
	th.Queue.Rewind()
	th.Sent = 0
	th.Blocked = false
	th.Finished = false
	th.Ticks = 0

	if th.Verbose {
		log.Printf("thread %d: reset", id)
	}
}

// State returns the scheduling state of the thread.
func (th *Thread) State() ThreadState {
	switch {
	case th.Finished:
		return THREAD_FINISHED
	case th.Blocked:
		return THREAD_BLOCKED
	default:
		return THREAD_RUNNING
	}
}

// Value resolves an operand against the register bank.
func (th *Thread) Value(op Operand) int64 {
	if op.IsRegister() {
		return th.Register.Get(op.Reg)
	}
	return op.Imm
}

// Target resolves a register operand to a writable reference.
// Immediate operands have no target, and return nil.
func (th *Thread) Target(op Operand) *int64 {
	if !op.IsRegister() {
		return nil
	}
	return th.Register.Ref(op.Reg)
}

// Execute executes any instruction other than rcv, whose meaning depends on
// the runner. Sent values are delivered to out.
// Returns the offset to the next instruction.
func (th *Thread) Execute(inst Instruction, out Channel) (offset int64, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	if th.Verbose {
		log.Printf("thread %d: %03d: %v", th.Id, th.Ip, inst)
	}

	th.Ticks++
	offset = 1

	switch inst.Op {
	case OP_SND:
		err = out.Send(th.Value(inst.Args[0]))
		if err != nil {
			return
		}
		th.Sent++
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		dst := th.Target(inst.Args[0])
		if dst == nil {
			err = errors.Join(ErrOpcodeArg1, ErrTargetInvalid)
			return
		}
		*dst, err = doAlu(inst.Op, *dst, th.Value(inst.Args[1]))
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
	case OP_JGZ:
		if th.Value(inst.Args[0]) > 0 {
			offset = th.Value(inst.Args[1])
			if offset == 0 {
				err = errors.Join(ErrOpcodeArg2, ErrJumpStall)
				return
			}
		}
	default:
		err = ErrOpcodeDecode
		return
	}

	return
}

// doAlu performs the arithmetic for set, add, mul and mod.
// Overflow wraps, and mod truncates towards zero.
func doAlu(op Op, input int64, value int64) (output int64, err error) {
	switch op {
	case OP_SET:
		output = value
	case OP_ADD:
		output = input + value
	case OP_MUL:
		output = input * value
	case OP_MOD:
		if value == 0 {
			err = ErrModZero
			return
		}
		output = input % value
	default:
		err = ErrOpcodeDecode
	}

	return
}

// Advance moves the instruction pointer by offset. If that leaves a program
// of the given size, the thread is finished and the pointer is left as is.
func (th *Thread) Advance(offset int64, size int) (ok bool) {
	next := int64(th.Ip) + offset
	if next < 0 || next >= int64(size) {
		th.Finished = true
		if th.Verbose {
			log.Printf("thread %d: exit at %03d%+d", th.Id, th.Ip, offset)
		}
		return false
	}

	th.Ip = int(next)
	return true
}

// String returns the current thread state as a string.
func (th *Thread) String() (text string) {
	text += fmt.Sprintf("% 6s: %d\n", "id", th.Id)
	text += fmt.Sprintf("% 6s: %03d\n", "ip", th.Ip)
	text += fmt.Sprintf("% 6s: %v\n", "state", th.State())
	text += fmt.Sprintf("% 6s: %d\n", "sent", th.Sent)

	for reg, value := range th.Register.All() {
		text += fmt.Sprintf("% 6s: %d\n", reg, value)
	}

	var queue []string
	for value := range th.Queue.Values() {
		queue = append(queue, fmt.Sprintf("%d", value))
	}
	text += fmt.Sprintf("% 6s: [%v]\n", "queue", strings.Join(queue, " "))

	return
}
