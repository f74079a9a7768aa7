// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"maps"
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Registers is the register bank of a thread.
// Every register reads as zero until it is first written.
type Registers [REGISTER_COUNT]int64

// Get returns the value of a register.
func (regs *Registers) Get(reg Register) int64 {
	return regs[reg-REGISTER_FIRST]
}

// Ref returns a writable reference to a register.
func (regs *Registers) Ref(reg Register) *int64 {
	return &regs[reg-REGISTER_FIRST]
}

// Reset zeroes all registers.
func (regs *Registers) Reset() {
	clear(regs[:])
}

// All iterates over the registers that hold a non-zero value.
func (regs *Registers) All() iter.Seq2[Register, int64] {
	return func(yield func(reg Register, value int64) bool) {
		for n, value := range regs {
			if value == 0 {
				continue
			}
			if !yield(REGISTER_FIRST+Register(n), value) {
				return
			}
		}
	}
}
