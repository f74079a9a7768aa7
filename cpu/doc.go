// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the duet processor and its assembler.
//
// A duet processor is a thread with 26 signed 64-bit registers (a-z), an
// instruction pointer, an inbound message queue and a count of values sent.
// The instruction set has seven opcodes: snd, set, add, mul, mod, rcv and jgz.
// Each operand is either a register or an immediate integer.
//
// The assembler reads one instruction per line, and supports equates and
// compile-time expression evaluation.
package cpu
