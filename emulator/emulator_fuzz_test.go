package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/duet/cpu"
)

// fuzzProgram builds a valid program, three bytes per instruction.
func fuzzProgram(data []byte) *cpu.Program {
	operand := func(b byte) cpu.Operand {
		if b&1 == 0 {
			return cpu.MakeRegister(cpu.REGISTER_FIRST + cpu.Register((b>>1)%byte(cpu.REGISTER_COUNT)))
		}
		return cpu.MakeImmediate(int64(int8(b)) >> 1)
	}

	var codes []cpu.Instruction
	for len(data) >= 3 {
		op := cpu.Op(data[0] % 7)
		code := cpu.Instruction{Op: op}
		code.Args[0] = operand(data[1])
		code.Args[1] = operand(data[2])
		if op.Writable() && !code.Args[0].IsRegister() {
			code.Args[0] = cpu.MakeRegister(cpu.REGISTER_ID)
		}
		if op.Arity() < 2 {
			code.Args[1] = cpu.Operand{}
		}
		codes = append(codes, code)
		data = data[3:]
	}

	return cpu.NewProgram(codes...)
}

func fuzzAllowed(err error) bool {
	return err == nil ||
		errors.Is(err, ErrTickLimit) ||
		errors.Is(err, cpu.ErrModZero) ||
		errors.Is(err, cpu.ErrJumpStall)
}

func FuzzRunners(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 1, 0, 5, 0, 0})
	f.Add([]byte{0, 3, 0, 0, 5, 0, 5, 0, 0, 5, 2, 0})
	f.Add([]byte{1, 0, 7, 2, 0, 0, 6, 0, 0xfd, 5, 0, 0})
	f.Add([]byte{6, 30, 7, 5, 0, 0, 0, 0, 0, 5, 2, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		prog := fuzzProgram(data)
		assert.NoError(prog.Validate())

		s := NewSingle(prog)
		s.TickLimit = 1000
		_, _, err := s.Run()
		assert.True(fuzzAllowed(err), "single: %v", err)
		if err == nil {
			assert.True(s.Thread.Finished)
		}

		d := NewDuet(prog)
		d.TickLimit = 1000
		sent, err := d.Run()
		assert.True(fuzzAllowed(err), "duet: %v", err)
		if err == nil {
			assert.Equal(d.Sent(DUET_OBSERVED_ID), sent)
			for n := range d.Thread {
				assert.Equal(cpu.THREAD_FINISHED, d.Thread[n].State())
			}
			assert.LessOrEqual(d.Ticks(), d.TickLimit)
		}
	})
}
