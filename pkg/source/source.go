package source

import (
	"bufio"
	"io"
	"strings"
)

// Reader yields the physical lines of an instruction file. Every line is
// counted, including blank and comment lines, so Line always matches the
// position in the file.
type Reader struct {
	r    *bufio.Reader
	text string
	line int
	err  error
	done bool
}

// NewReader creates a line reader over r. Lines may be of any length.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next advances to the next line, returning false at end of input or on
// a read error
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	text, err := r.r.ReadString('\n')
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
			return false
		}
		if text == "" {
			return false
		}
	}

	r.line++
	r.text = strings.TrimSuffix(text, "\n")
	return true
}

// Text returns the current line without its trailing newline
func (r *Reader) Text() string {
	return r.text
}

// Line returns the 1-based number of the current line
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first non-EOF read error
func (r *Reader) Err() error {
	return r.err
}
