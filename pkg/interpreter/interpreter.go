package interpreter

import (
	"io"
	"os"

	"monty/pkg/lexer"
	"monty/pkg/stack"

	"github.com/pkg/errors"
)

// Step describes one executed instruction, handed to the trace hook
type Step struct {
	Line   int     // physical source line
	Opcode string  // dispatched opcode
	Arg    string  // numeric argument, empty when absent
	Stack  []int64 // stack contents after the instruction, top first
}

// Machine executes instruction lines against a single value stack
type Machine struct {
	stack *stack.Stack // live value stack
	line  int          // line number of the instruction being executed

	out io.Writer // output writer for pall, pint, pchar and pstr

	maxDepth int        // maximum stack depth (0 = unlimited)
	trace    func(Step) // called after every executed instruction
	steps    int        // instructions executed
	closed   bool
}

type Option func(*Machine)

// WithWriter sets the output writer for printing opcodes
func WithWriter(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// WithMaxDepth caps the number of stack elements; a push beyond the cap
// fails with an AllocationFailure fault
func WithMaxDepth(n int) Option {
	return func(m *Machine) { m.maxDepth = n }
}

// WithTrace installs a hook called after each executed instruction
func WithTrace(fn func(Step)) Option {
	return func(m *Machine) { m.trace = fn }
}

// NewMachine creates a new Machine with an empty stack
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		stack:    stack.NewStack(),
		out:      nil, // caller should set, or use WithWriter
		maxDepth: 0,   // 0 => unlimited
	}

	for _, o := range opts {
		o(m)
	}

	if m.out == nil {
		m.out = os.Stdout
	}

	return m
}

// Exec runs one physical source line. Blank lines and lines whose first
// token starts with '#' are skipped. The returned error is a *Fault.
func (m *Machine) Exec(line int, text string) error {
	if m.closed {
		return ErrClosed
	}

	m.line = line
	args := lexer.NewTokenizer(line, text)

	op := args.NextToken()
	if op.Type == lexer.EOL || op.Type == lexer.COMMENT {
		return nil
	}

	handler, ok := Lookup(op.Lexeme)
	if !ok {
		return newFault(UnknownOpcode, line, op.Lexeme)
	}

	var arg string
	if next := args.Peek(); next.Type == lexer.NUM {
		arg = next.Lexeme
	}

	if err := handler(m, args); err != nil {
		return err
	}
	m.steps++

	if m.trace != nil {
		m.trace(Step{
			Line:   line,
			Opcode: op.Lexeme,
			Arg:    arg,
			Stack:  m.stack.Values(),
		})
	}

	return nil
}

// Stack returns the live value stack
func (m *Machine) Stack() *stack.Stack {
	return m.stack
}

// Line returns the line number of the last dispatched instruction
func (m *Machine) Line() int {
	return m.line
}

// Steps returns the number of instructions executed successfully
func (m *Machine) Steps() int {
	return m.steps
}

// Close releases the stack. Further calls to Exec fail with ErrClosed.
func (m *Machine) Close() {
	m.stack.Clear()
	m.closed = true
}

// write sends printing opcode output to the writer. An empty pall
// writes nothing.
func (m *Machine) write(opcode string, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if _, err := m.out.Write(p); err != nil {
		return errors.Wrapf(err, "L%d: can't %s, writing output", m.line, opcode)
	}

	return nil
}

// fault builds a fault for the instruction being executed
func (m *Machine) fault(kind FaultKind, opcode string) *Fault {
	return newFault(kind, m.line, opcode)
}

var ErrClosed = errors.New("machine is closed")
