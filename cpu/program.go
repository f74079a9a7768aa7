// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Code   Instruction
}

// Program is an immutable sequence of instructions, shared by every
// thread that runs it.
type Program struct {
	Opcodes []Opcode
}

// NewProgram creates a program directly from instructions.
func NewProgram(codes ...Instruction) (prog *Program) {
	prog = &Program{}
	for ip, code := range codes {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: ip + 1,
			Ip:     ip,
			Words:  strings.Fields(code.String()),
			Code:   code,
		})
	}

	return
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Opcodes)
}

// Fetch returns the instruction at ip.
func (prog *Program) Fetch(ip int) (code Instruction, ok bool) {
	if ip < 0 || ip >= prog.Len() {
		return
	}

	return prog.Opcodes[ip].Code, true
}

// Debug returns the source opcode for ip, or nil if ip is outside the program.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip < 0 || ip >= prog.Len() {
		return
	}

	return &prog.Opcodes[ip]
}

// LineNo returns the source line of ip, or 0 if ip is outside the program.
func (prog *Program) LineNo(ip int) int {
	op := prog.Debug(ip)
	if op == nil {
		return 0
	}
	return op.LineNo
}

// Validate checks every instruction in the program.
func (prog *Program) Validate() (err error) {
	if prog == nil {
		return
	}

	for _, op := range prog.Opcodes {
		err = op.Code.Validate()
		if err != nil {
			err = &ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "), Err: err}
			return
		}
	}

	return
}

// Codes iterates over the instructions of the program.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, code Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// String returns a listing of the program.
func (prog *Program) String() (text string) {
	for ip, code := range prog.Codes() {
		text += fmt.Sprintf("%03d: %v\n", ip, code)
	}

	return
}
