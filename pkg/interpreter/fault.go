package interpreter

import "fmt"

type FaultKind int

const (
	UsageError FaultKind = iota
	FileOpenError
	UnknownOpcode
	InvalidPushArgument
	Underflow
	TooShort
	DivisionByZero
	OutOfRange
	AllocationFailure
)

func (k FaultKind) String() string {
	switch k {
	case UsageError:
		return "usage error"
	case FileOpenError:
		return "file open error"
	case UnknownOpcode:
		return "unknown opcode"
	case InvalidPushArgument:
		return "invalid push argument"
	case Underflow:
		return "underflow"
	case TooShort:
		return "too short"
	case DivisionByZero:
		return "division by zero"
	case OutOfRange:
		return "out of range"
	case AllocationFailure:
		return "allocation failure"
	}

	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// Fault is a fatal condition. Its Error method renders the exact
// diagnostic line (without the trailing newline) reported to the user.
type Fault struct {
	Kind   FaultKind
	Line   int    // physical source line, 0 for pre-execution faults
	Opcode string // opcode that faulted, or the unknown token
	Path   string // file path for FileOpenError
}

func (f *Fault) Error() string {
	switch f.Kind {
	case UsageError:
		return "USAGE: monty file"
	case FileOpenError:
		return fmt.Sprintf("Error: Can't open file %s", f.Path)
	case AllocationFailure:
		return "Error: malloc failed"
	case UnknownOpcode:
		return f.at("unknown instruction %s", f.Opcode)
	case InvalidPushArgument:
		return f.at("usage: push integer")
	case Underflow:
		if f.Opcode == "pop" {
			return f.at("can't pop an empty stack")
		}
		return f.at("can't %s, stack empty", f.Opcode)
	case TooShort:
		return f.at("can't %s, stack too short", f.Opcode)
	case DivisionByZero:
		return f.at("division by zero")
	case OutOfRange:
		return f.at("can't %s, value out of range", f.Opcode)
	}

	return f.at("%s in %s", f.Kind, f.Opcode)
}

func (f *Fault) at(format string, args ...any) string {
	return fmt.Sprintf("L%d: ", f.Line) + fmt.Sprintf(format, args...)
}

// NewUsageError reports a malformed command line
func NewUsageError() *Fault {
	return &Fault{Kind: UsageError}
}

// NewFileOpenError reports an instruction file that could not be opened
func NewFileOpenError(path string) *Fault {
	return &Fault{Kind: FileOpenError, Path: path}
}

func newFault(kind FaultKind, line int, opcode string) *Fault {
	return &Fault{Kind: kind, Line: line, Opcode: opcode}
}
