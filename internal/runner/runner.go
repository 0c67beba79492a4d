package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"monty/pkg/color"
	"monty/pkg/interpreter"
	"monty/pkg/snapshot"
	"monty/pkg/source"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Runner struct {
	SourceFile string    // Path to the instruction file
	Trace      bool      // Print every executed instruction and the resulting stack
	Snapshot   string    // Path of the msgpack snapshot written after a clean run
	MaxDepth   int       // Maximum stack depth, 0 for unlimited
	Stdout     io.Writer // Program output, os.Stdout when nil
	Stderr     io.Writer // Trace output, os.Stderr when nil
}

// Run executes the instruction file to completion. The first fault stops
// execution and is returned as an *interpreter.Fault; the stack is then
// left for process exit to reclaim.
func (r *Runner) Run(ctx context.Context) error {
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	logger := log.With("run", uuid.NewString(), "file", r.SourceFile)

	f, err := os.Open(r.SourceFile)
	if err != nil {
		logger.Debug("Failed to open file", "error", err)
		return interpreter.NewFileOpenError(r.SourceFile)
	}
	defer f.Close()
	logger.Debug("Processing file")

	opts := []interpreter.Option{
		interpreter.WithWriter(stdout),
		interpreter.WithMaxDepth(r.MaxDepth),
	}
	if r.Trace {
		opts = append(opts, interpreter.WithTrace(func(s interpreter.Step) {
			writeTrace(stderr, s)
		}))
	}
	m := interpreter.NewMachine(opts...)

	lines := source.NewReader(f)
	for lines.Next() {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "stopped before line %d", lines.Line())
		}

		logger.Debug("Dispatch", "line", lines.Line(), "text", lines.Text())
		if err := m.Exec(lines.Line(), lines.Text()); err != nil {
			logger.Debug("Execution halted", "line", m.Line(), "error", err)
			return err
		}
	}
	if err := lines.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", r.SourceFile)
	}

	logger.Debug("Execution finished", "lines", lines.Line(), "steps", m.Steps(), "depth", m.Stack().Size())

	if r.Snapshot != "" {
		s, err := snapshot.New(lines.Line(), m.Stack().Values())
		if err != nil {
			return err
		}
		if err := snapshot.WriteFile(r.Snapshot, s); err != nil {
			return err
		}
		logger.Debug("Snapshot written", "path", r.Snapshot, "fingerprint", fmt.Sprintf("%016x", s.Fingerprint))
	}

	m.Close()
	return nil
}

// writeTrace prints one executed instruction as
// "L<n> <opcode> [<arg>] => [v1 v2 ...] #<fingerprint>"
func writeTrace(w io.Writer, s interpreter.Step) {
	var b strings.Builder

	b.WriteString(color.Line(s.Line))
	b.WriteByte(' ')
	b.WriteString(color.YellowText(s.Opcode))
	if s.Arg != "" {
		b.WriteByte(' ')
		b.WriteString(color.BlueText(s.Arg))
	}

	values := make([]string, 0, len(s.Stack))
	for _, v := range s.Stack {
		values = append(values, strconv.FormatInt(v, 10))
	}
	b.WriteString(" => ")
	b.WriteString(color.GreenText("[" + strings.Join(values, " ") + "]"))

	if h, err := snapshot.Fingerprint(s.Stack); err == nil {
		b.WriteByte(' ')
		b.WriteString(color.Code(fmt.Sprintf("#%016x", uint64(h))))
	}

	b.WriteByte('\n')
	io.WriteString(w, b.String())
}

// ExitCode maps the result of Run to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	return 1
}

// Diagnostic renders err as the single line reported on stderr. Faults
// keep their exact wording; anything else is prefixed with "Error: ".
func Diagnostic(err error) string {
	var fault *interpreter.Fault
	if errors.As(err, &fault) {
		return fault.Error()
	}

	return "Error: " + err.Error()
}
