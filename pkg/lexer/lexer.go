package lexer

// Tokenizer splits one physical source line into whitespace-delimited
// tokens. It carries its own cursor, so a handler that needs an argument
// pulls it from the value it was given rather than from shared state.
type Tokenizer struct {
	input    string // the line being tokenized
	length   int    // length of the line
	position int    // current position in the line
	line     int    // physical line number for error reporting
}

// NewTokenizer creates a tokenizer for the given line
func NewTokenizer(line int, s string) *Tokenizer {
	return &Tokenizer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     line,
	}
}

// NextToken returns the next token, or an EOL token once the line is exhausted
func (l *Tokenizer) NextToken() Token {
	l.skipWhitespace()

	if l.position >= l.length {
		return NewToken(EOL, "", l.currentPosition())
	}

	pos := l.currentPosition()
	start := l.position
	for l.position < l.length && !isDelimiter(l.input[l.position]) {
		l.position++
	}
	lexeme := l.input[start:l.position]

	return NewToken(classify(lexeme), lexeme, pos)
}

// View next token without advancing the position
func (l *Tokenizer) Peek() Token {
	cpos := l.position
	token := l.NextToken()
	l.position = cpos

	return token
}

// Check if there are more tokens to read
func (l *Tokenizer) HasMore() bool {
	return l.Peek().Type != EOL
}

func (l *Tokenizer) skipWhitespace() {
	for l.position < l.length && isDelimiter(l.input[l.position]) {
		l.position++
	}
}

func (l *Tokenizer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.position + 1,
	}
}

func isDelimiter(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func classify(lexeme string) TokenType {
	switch {
	case lexeme[0] == '#':
		return COMMENT
	case IsInteger(lexeme):
		return NUM
	default:
		return WORD
	}
}
