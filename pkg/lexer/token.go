package lexer

import (
	"fmt"
)

type TokenType int

type Token struct {
	Type   TokenType // Type of the token
	Lexeme string    // Actual string from source code
	Pos    Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, pos Position) Token {
	return Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

const (
	EOL TokenType = iota // End of line

	WORD    // opcode or any other bare word
	NUM     // signed decimal integer
	COMMENT // word starting with '#'
)

// String returns a string representation of the Token
func (t Token) String() string {
	return fmt.Sprintf("T_{%s, %q, %s}", t.Type, t.Lexeme, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	switch t {
	case EOL:
		return "eol"
	case WORD:
		return "word"
	case NUM:
		return "num"
	case COMMENT:
		return "comment"
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Int returns the integer value of a NUM token
func (t Token) Int() (int64, error) {
	if t.Type != NUM {
		return 0, fmt.Errorf("token %s is not a number", t)
	}

	return ParseInteger(t.Lexeme)
}
