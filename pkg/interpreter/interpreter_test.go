package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes src line by line and stops at the first fault
func run(t *testing.T, src string, opts ...Option) (*Machine, string, error) {
	t.Helper()

	var out bytes.Buffer
	m := NewMachine(append([]Option{WithWriter(&out)}, opts...)...)
	for i, line := range strings.Split(src, "\n") {
		if err := m.Exec(i+1, line); err != nil {
			return m, out.String(), err
		}
	}

	return m, out.String(), nil
}

func requireFault(t *testing.T, err error, kind FaultKind, msg string) {
	t.Helper()

	var f *Fault
	require.True(t, errors.As(err, &f), "expected a fault, got %v", err)
	assert.Equal(t, kind, f.Kind)
	assert.Equal(t, msg, f.Error())
}

func TestPushPall(t *testing.T) {
	_, out, err := run(t, "push 1\npush 2\npush 3\npall")
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestPushArguments(t *testing.T) {
	m, _, err := run(t, "push -5\npush +6\npush 0\npush 7 trailing words\npush\t8\t# comment")
	require.NoError(t, err)
	assert.Equal(t, []int64{8, 7, 0, 6, -5}, m.Stack().Values())
}

func TestPushInvalid(t *testing.T) {
	for _, line := range []string{"push", "push ", "push x", "push 1.5", "push -", "push +", "push 12a", "push #1", "push 99999999999999999999"} {
		t.Run(line, func(t *testing.T) {
			_, _, err := run(t, "nop\n"+line)
			requireFault(t, err, InvalidPushArgument, "L2: usage: push integer")
		})
	}
}

func TestPint(t *testing.T) {
	_, out, err := run(t, "push 1\npush 2\npint")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, _, err = run(t, "pint")
	requireFault(t, err, Underflow, "L1: can't pint, stack empty")
}

func TestPop(t *testing.T) {
	m, _, err := run(t, "push 1\npush 2\npop")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, m.Stack().Values())

	_, _, err = run(t, "push 1\npop\npop")
	requireFault(t, err, Underflow, "L3: can't pop an empty stack")
}

func TestSwap(t *testing.T) {
	m, _, err := run(t, "push 1\npush 2\npush 3\nswap")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, m.Stack().Values())

	_, _, err = run(t, "push 1\nswap")
	requireFault(t, err, TooShort, "L2: can't swap, stack too short")
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   string
		want int64
	}{
		{"add", 8},
		{"sub", 2},
		{"mul", 15},
		{"div", 1},
		{"mod", 2},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			m, _, err := run(t, "push 5\npush 3\n"+tt.op)
			require.NoError(t, err)
			assert.Equal(t, []int64{tt.want}, m.Stack().Values())
		})
	}
}

func TestArithmeticKeepsRest(t *testing.T) {
	m, _, err := run(t, "push 100\npush 10\npush 4\nsub")
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 100}, m.Stack().Values())
}

func TestArithmeticNegatives(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"push -7\npush 2\ndiv", -3},
		{"push -7\npush 2\nmod", -1},
		{"push 7\npush -2\nmod", 1},
		{"push -9223372036854775808\npush -1\ndiv", -9223372036854775808},
		{"push 9223372036854775807\npush 1\nadd", -9223372036854775808},
	}

	for _, tt := range tests {
		m, _, err := run(t, tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, []int64{tt.want}, m.Stack().Values(), tt.src)
	}
}

func TestArithmeticTooShort(t *testing.T) {
	for _, op := range []string{"add", "sub", "mul", "div", "mod"} {
		t.Run(op, func(t *testing.T) {
			m, _, err := run(t, "push 1\n"+op)
			requireFault(t, err, TooShort, "L2: can't "+op+", stack too short")
			assert.Equal(t, []int64{1}, m.Stack().Values())

			_, _, err = run(t, op)
			requireFault(t, err, TooShort, "L1: can't "+op+", stack too short")
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, op := range []string{"div", "mod"} {
		for _, second := range []string{"0", "1", "-4", "1000"} {
			m, _, err := run(t, "push "+second+"\npush 0\n"+op)
			requireFault(t, err, DivisionByZero, "L3: division by zero")
			assert.Equal(t, 2, m.Stack().Size(), "stack is untouched")
		}
	}
}

func TestPchar(t *testing.T) {
	_, out, err := run(t, "push 72\npchar")
	require.NoError(t, err)
	assert.Equal(t, "H\n", out)

	_, out, err = run(t, "push 0\npchar\npush 127\npchar")
	require.NoError(t, err)
	assert.Equal(t, "\x00\n\x7f\n", out)

	_, _, err = run(t, "push -1\npchar")
	requireFault(t, err, OutOfRange, "L2: can't pchar, value out of range")

	_, _, err = run(t, "push 128\npchar")
	requireFault(t, err, OutOfRange, "L2: can't pchar, value out of range")

	_, _, err = run(t, "pchar")
	requireFault(t, err, Underflow, "L1: can't pchar, stack empty")
}

func TestPstr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "pstr", "\n"},
		{"whole stack", "push 67\npush 66\npush 65\npstr", "ABC\n"},
		{"stops at zero", "push 67\npush 0\npush 66\npush 65\npstr", "AB\n"},
		{"stops at negative", "push 67\npush -3\npush 65\npstr", "A\n"},
		{"stops above ascii", "push 67\npush 200\npush 65\npstr", "A\n"},
		{"zero on top", "push 65\npush 0\npstr", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out, err := run(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.NotNil(t, m)
		})
	}
}

func TestRotations(t *testing.T) {
	m, _, err := run(t, "push 1\npush 2\npush 3\nrotl")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, m.Stack().Values())

	m, _, err = run(t, "push 1\npush 2\npush 3\nrotr")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2}, m.Stack().Values())

	m, _, err = run(t, "rotl\nrotr\npush 9\nrotl\nrotr")
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, m.Stack().Values())
}

func TestNop(t *testing.T) {
	m, out, err := run(t, "push 1\nnop\nnop extra\npall")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Equal(t, []int64{1}, m.Stack().Values())
	assert.Equal(t, 4, m.Steps())
}

func TestUnknownOpcode(t *testing.T) {
	m, out, err := run(t, "push 1\npall\nPUSH 2\npall")
	requireFault(t, err, UnknownOpcode, "L3: unknown instruction PUSH")
	assert.Equal(t, "1\n", out)
	assert.Equal(t, 3, m.Line())
	assert.Equal(t, []int64{1}, m.Stack().Values())
}

func TestCommentsAndBlankLinesAreCounted(t *testing.T) {
	_, _, err := run(t, "# header\n\n   \npush 1\n  #push 2\nbogus")
	requireFault(t, err, UnknownOpcode, "L6: unknown instruction bogus")
}

func TestMaxDepth(t *testing.T) {
	m, _, err := run(t, "push 1\npush 2\npush 3", WithMaxDepth(2))
	requireFault(t, err, AllocationFailure, "Error: malloc failed")
	assert.Equal(t, 2, m.Stack().Size())
}

func TestTrace(t *testing.T) {
	var steps []Step
	_, _, err := run(t, "# c\npush 4\npush 5\nadd", WithTrace(func(s Step) { steps = append(steps, s) }))
	require.NoError(t, err)

	require.Len(t, steps, 3)
	assert.Equal(t, Step{Line: 2, Opcode: "push", Arg: "4", Stack: []int64{4}}, steps[0])
	assert.Equal(t, Step{Line: 4, Opcode: "add", Arg: "", Stack: []int64{9}}, steps[2])
}

func TestClose(t *testing.T) {
	m, _, err := run(t, "push 1\npush 2")
	require.NoError(t, err)

	m.Close()
	assert.Equal(t, 0, m.Stack().Size())
	assert.ErrorIs(t, m.Exec(3, "pall"), ErrClosed)
}

func TestOpcodes(t *testing.T) {
	assert.Equal(t, []string{
		"add", "div", "mod", "mul", "nop", "pall", "pchar", "pint",
		"pop", "pstr", "push", "rotl", "rotr", "sub", "swap",
	}, Opcodes())

	_, ok := Lookup("Push")
	assert.False(t, ok)
}

func TestPreExecutionFaults(t *testing.T) {
	assert.Equal(t, "USAGE: monty file", NewUsageError().Error())
	assert.Equal(t, "Error: Can't open file missing.m", NewFileOpenError("missing.m").Error())
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestOutputErrors(t *testing.T) {
	closed := errors.New("write /dev/stdout: file already closed")

	for _, op := range []string{"pall", "pint", "pchar", "pstr"} {
		t.Run(op, func(t *testing.T) {
			m := NewMachine(WithWriter(failingWriter{closed}))
			require.NoError(t, m.Exec(1, "push 65"))

			err := m.Exec(2, op)
			require.ErrorIs(t, err, closed)
			assert.Contains(t, err.Error(), "L2: can't "+op+", writing output")

			var f *Fault
			assert.False(t, errors.As(err, &f))
		})
	}
}

func TestEmptyPallWritesNothing(t *testing.T) {
	m := NewMachine(WithWriter(failingWriter{errors.New("closed")}))
	assert.NoError(t, m.Exec(1, "pall"))
}
