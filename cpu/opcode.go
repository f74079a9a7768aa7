// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strconv"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SND = Op(0) // snd
	OP_SET = Op(1) // set
	OP_ADD = Op(2) // add
	OP_MUL = Op(3) // mul
	OP_MOD = Op(4) // mod
	OP_RCV = Op(5) // rcv
	OP_JGZ = Op(6) // jgz
)

// opMap maps opcode names.
var opMap = map[string]Op{
	"snd": OP_SND,
	"set": OP_SET,
	"add": OP_ADD,
	"mul": OP_MUL,
	"mod": OP_MOD,
	"rcv": OP_RCV,
	"jgz": OP_JGZ,
}

// Valid returns true for one of the seven defined operations.
func (op Op) Valid() bool {
	return op >= OP_SND && op <= OP_JGZ
}

// Arity returns the number of operands taken by the operation.
func (op Op) Arity() int {
	switch op {
	case OP_SND, OP_RCV:
		return 1
	default:
		return 2
	}
}

// Writable returns true if the first operand must be a writable register.
func (op Op) Writable() bool {
	switch op {
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		return true
	default:
		return false
	}
}

// Register is a register name, 'a' through 'z'.
type Register byte

const (
	REGISTER_FIRST = Register('a')
	REGISTER_LAST  = Register('z')
	REGISTER_COUNT = int(REGISTER_LAST-REGISTER_FIRST) + 1

	// REGISTER_ID is loaded with the thread id on reset.
	REGISTER_ID = Register('p')
)

// Valid returns true for a lowercase single letter register name.
func (r Register) Valid() bool {
	return r >= REGISTER_FIRST && r <= REGISTER_LAST
}

func (r Register) String() string {
	return string(rune(r))
}

// Operand is either a register or an immediate value.
type Operand struct {
	Reg Register // Non-zero for a register operand.
	Imm int64    // Immediate value, when Reg is zero.
}

// MakeRegister creates a register operand.
func MakeRegister(reg Register) Operand {
	return Operand{Reg: reg}
}

// MakeImmediate creates an immediate operand.
func MakeImmediate(value int64) Operand {
	return Operand{Imm: value}
}

// IsRegister returns true if the operand names a register.
func (op Operand) IsRegister() bool {
	return op.Reg != 0
}

func (op Operand) String() string {
	if op.IsRegister() {
		return op.Reg.String()
	}
	return strconv.FormatInt(op.Imm, 10)
}

// Instruction is a single decoded operation and its operands.
type Instruction struct {
	Op   Op
	Args [2]Operand
}

// MakeSnd sends the value of src.
func MakeSnd(src Operand) Instruction {
	return Instruction{Op: OP_SND, Args: [2]Operand{src}}
}

// MakeSet sets dst to src.
func MakeSet(dst Register, src Operand) Instruction {
	return Instruction{Op: OP_SET, Args: [2]Operand{MakeRegister(dst), src}}
}

// MakeAdd adds src to dst.
func MakeAdd(dst Register, src Operand) Instruction {
	return Instruction{Op: OP_ADD, Args: [2]Operand{MakeRegister(dst), src}}
}

// MakeMul multiplies dst by src.
func MakeMul(dst Register, src Operand) Instruction {
	return Instruction{Op: OP_MUL, Args: [2]Operand{MakeRegister(dst), src}}
}

// MakeMod sets dst to the remainder of dst divided by src.
func MakeMod(dst Register, src Operand) Instruction {
	return Instruction{Op: OP_MOD, Args: [2]Operand{MakeRegister(dst), src}}
}

// MakeRcv receives into dst (duet), or recovers if dst is non-zero (single).
func MakeRcv(dst Operand) Instruction {
	return Instruction{Op: OP_RCV, Args: [2]Operand{dst}}
}

// MakeJgz jumps by offset if cond is greater than zero.
func MakeJgz(cond, offset Operand) Instruction {
	return Instruction{Op: OP_JGZ, Args: [2]Operand{cond, offset}}
}

// Operands returns the operands used by the instruction.
func (inst Instruction) Operands() []Operand {
	if !inst.Op.Valid() {
		return nil
	}
	return inst.Args[:inst.Op.Arity()]
}

// Validate checks that the instruction can be executed.
func (inst Instruction) Validate() (err error) {
	if !inst.Op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	for n, arg := range inst.Operands() {
		if arg.IsRegister() && !arg.Reg.Valid() {
			err = ErrParseValue(arg.Reg.String())
			return
		}
		if n == 0 && inst.Op.Writable() && !arg.IsRegister() {
			err = ErrTargetInvalid
			return
		}
	}

	return
}

func (inst Instruction) String() string {
	text := inst.Op.String()
	for _, arg := range inst.Operands() {
		text += " " + arg.String()
	}
	return text
}
