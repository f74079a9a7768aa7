package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/duet/cpu"
)

func TestSingle(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"set a 1",
		"add a 2",
		"mul a a",
		"mod a 5",
		"snd a",
		"set a 0",
		"rcv a",
		"jgz a -1",
		"set a 1",
		"jgz a -2",
	)

	s := NewSingle(prog)
	value, ok, err := s.Run()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(4), value)
	assert.Equal(cpu.THREAD_FINISHED, s.Thread.State())

	// Runs are deterministic.
	again, ok, err := s.Run()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(value, again)
}

func TestSingleRecoverSetValue(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.NewProgram(
		cpu.MakeSet('a', cpu.MakeImmediate(1)),
		cpu.MakeAdd('a', cpu.MakeImmediate(1)),
		cpu.MakeSnd(cpu.MakeRegister('a')),
		cpu.MakeRcv(cpu.MakeRegister('a')),
	)

	value, ok, err := NewSingle(prog).Run()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(2), value)
}

func TestSingleRecoverBeforeSend(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.NewProgram(cpu.MakeRcv(cpu.MakeImmediate(1)))

	value, ok, err := NewSingle(prog).Run()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(0), value)
}

func TestSingleRunOff(t *testing.T) {
	assert := assert.New(t)

	// A non-positive guard falls through to the next instruction.
	prog := cpu.NewProgram(
		cpu.MakeSet('a', cpu.MakeImmediate(-1)),
		cpu.MakeJgz(cpu.MakeRegister('a'), cpu.MakeImmediate(-1)),
	)

	s := NewSingle(prog)
	value, ok, err := s.Run()
	assert.NoError(err)
	assert.False(ok)
	assert.Equal(int64(0), value)
	assert.Equal(2, s.Ticks())
	assert.Equal(1, s.Thread.Ip)
	assert.True(s.Thread.Finished)

	// Negative jumps off the front also end the run.
	prog = cpu.NewProgram(
		cpu.MakeSnd(cpu.MakeImmediate(3)),
		cpu.MakeJgz(cpu.MakeImmediate(1), cpu.MakeImmediate(-2)),
	)
	_, ok, err = NewSingle(prog).Run()
	assert.NoError(err)
	assert.False(ok)

	// So does an empty program.
	_, ok, err = NewSingle(cpu.NewProgram()).Run()
	assert.NoError(err)
	assert.False(ok)
}

func TestSingleRecoverSkipsZero(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.NewProgram(
		cpu.MakeSnd(cpu.MakeImmediate(5)),
		cpu.MakeRcv(cpu.MakeRegister('z')),
		cpu.MakeSnd(cpu.MakeImmediate(6)),
		cpu.MakeRcv(cpu.MakeImmediate(-1)),
	)

	value, ok, err := NewSingle(prog).Run()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(6), value)
}

func TestSingleTick(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.NewProgram(
		cpu.MakeSnd(cpu.MakeImmediate(9)),
		cpu.MakeRcv(cpu.MakeImmediate(1)),
	)

	s := NewSingle(prog)
	assert.NoError(s.Reset())

	done, err := s.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(1, s.Thread.Ip)
	_, ok := s.Result()
	assert.False(ok)

	done, err = s.Tick()
	assert.NoError(err)
	assert.True(done)

	// Ticking a finished run is a no-op.
	done, err = s.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, s.Ticks())

	value, ok := s.Result()
	assert.True(ok)
	assert.Equal(int64(9), value)
}

func TestSingleErrors(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"set a 7",
		"mod a b",
	)
	_, _, err := NewSingle(prog).Run()
	assert.ErrorIs(err, cpu.ErrModZero)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(2, runtime.LineNo)
		assert.Equal(1, runtime.Ip)
		assert.Equal(int64(0), runtime.Thread)
	}

	prog = cpu.NewProgram(cpu.MakeJgz(cpu.MakeImmediate(1), cpu.MakeRegister('a')))
	_, _, err = NewSingle(prog).Run()
	assert.ErrorIs(err, cpu.ErrJumpStall)

	prog = cpu.NewProgram(
		cpu.MakeAdd('a', cpu.MakeImmediate(1)),
		cpu.MakeJgz(cpu.MakeRegister('a'), cpu.MakeImmediate(-1)),
	)
	s := NewSingle(prog)
	s.TickLimit = 100
	_, _, err = s.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(100, s.Ticks())

	bad := cpu.NewProgram(cpu.Instruction{Op: cpu.OP_SET, Args: [2]cpu.Operand{cpu.MakeImmediate(1)}})
	_, _, err = NewSingle(bad).Run()
	assert.ErrorIs(err, cpu.ErrMalformedProgram)
}
