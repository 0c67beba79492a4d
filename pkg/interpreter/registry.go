package interpreter

import (
	"sort"

	"monty/pkg/lexer"
)

// Handler executes one opcode. args is positioned just after the opcode
// token; handlers that take an argument read it from there.
type Handler func(m *Machine, args *lexer.Tokenizer) error

// registry maps opcode names to handlers. It is built once and never
// written to afterwards.
var registry = map[string]Handler{
	"push":  push,
	"pall":  pall,
	"pint":  pint,
	"pop":   pop,
	"swap":  swap,
	"add":   add,
	"sub":   sub,
	"mul":   mul,
	"div":   div,
	"mod":   mod,
	"pchar": pchar,
	"pstr":  pstr,
	"rotl":  rotl,
	"rotr":  rotr,
	"nop":   nop,
}

// Lookup returns the handler registered for an exact, case-sensitive
// opcode name
func Lookup(name string) (Handler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Opcodes returns the registered opcode names in sorted order
func Opcodes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
