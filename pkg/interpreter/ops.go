package interpreter

import (
	"errors"
	"strconv"

	"monty/pkg/lexer"
	"monty/pkg/stack"
)

// Characters printable by pchar and pstr are in the ASCII table.
const (
	minChar = 0
	maxChar = 127
)

// push <int>: pushes the integer argument
func push(m *Machine, args *lexer.Tokenizer) error {
	arg := args.NextToken()
	if arg.Type != lexer.NUM {
		return m.fault(InvalidPushArgument, "push")
	}

	v, err := arg.Int()
	if err != nil {
		// out of the int64 range
		return m.fault(InvalidPushArgument, "push")
	}

	if m.maxDepth > 0 && m.stack.Size() >= m.maxDepth {
		return m.fault(AllocationFailure, "push")
	}

	m.stack.Push(v)
	return nil
}

// pall: prints every value, top first, one per line
func pall(m *Machine, _ *lexer.Tokenizer) error {
	var buf []byte
	m.stack.Each(func(v int64) bool {
		buf = strconv.AppendInt(buf, v, 10)
		buf = append(buf, '\n')
		return true
	})

	return m.write("pall", buf)
}

// pint: prints the top value
func pint(m *Machine, _ *lexer.Tokenizer) error {
	v, err := m.stack.Peek()
	if err != nil {
		return m.fault(Underflow, "pint")
	}

	return m.write("pint", append(strconv.AppendInt(nil, v, 10), '\n'))
}

// pop: removes the top value
func pop(m *Machine, _ *lexer.Tokenizer) error {
	if _, err := m.stack.Pop(); err != nil {
		return m.fault(Underflow, "pop")
	}

	return nil
}

// swap: exchanges the two top values
func swap(m *Machine, _ *lexer.Tokenizer) error {
	if err := m.stack.Swap(); err != nil {
		return m.fault(TooShort, "swap")
	}

	return nil
}

func add(m *Machine, _ *lexer.Tokenizer) error {
	return m.binary("add", func(a, b int64) (int64, error) { return a + b, nil })
}

func sub(m *Machine, _ *lexer.Tokenizer) error {
	return m.binary("sub", func(a, b int64) (int64, error) { return a - b, nil })
}

func mul(m *Machine, _ *lexer.Tokenizer) error {
	return m.binary("mul", func(a, b int64) (int64, error) { return a * b, nil })
}

// div truncates towards zero
func div(m *Machine, _ *lexer.Tokenizer) error {
	return m.binary("div", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, m.fault(DivisionByZero, "div")
		}
		return a / b, nil
	})
}

// mod takes the sign of the dividend
func mod(m *Machine, _ *lexer.Tokenizer) error {
	return m.binary("mod", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, m.fault(DivisionByZero, "mod")
		}
		return a % b, nil
	})
}

// binary folds the top value into the second one as fn(second, top) and
// drops the top
func (m *Machine) binary(opcode string, fn func(a, b int64) (int64, error)) error {
	err := m.stack.Combine(fn)
	if errors.Is(err, stack.ErrTooShort) {
		return m.fault(TooShort, opcode)
	}

	return err
}

// pchar: prints the top value as an ASCII character
func pchar(m *Machine, _ *lexer.Tokenizer) error {
	v, err := m.stack.Peek()
	if err != nil {
		return m.fault(Underflow, "pchar")
	}

	if v < minChar || v > maxChar {
		return m.fault(OutOfRange, "pchar")
	}

	return m.write("pchar", []byte{byte(v), '\n'})
}

// pstr: prints characters from the top down, stopping at the end of the
// stack, at 0, or at a value outside the ASCII table
func pstr(m *Machine, _ *lexer.Tokenizer) error {
	buf := make([]byte, 0, m.stack.Size()+1)
	m.stack.Each(func(v int64) bool {
		if v <= minChar || v > maxChar {
			return false
		}
		buf = append(buf, byte(v))
		return true
	})

	return m.write("pstr", append(buf, '\n'))
}

func rotl(m *Machine, _ *lexer.Tokenizer) error {
	m.stack.RotateLeft()
	return nil
}

func rotr(m *Machine, _ *lexer.Tokenizer) error {
	m.stack.RotateRight()
	return nil
}

func nop(*Machine, *lexer.Tokenizer) error {
	return nil
}
