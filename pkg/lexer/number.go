package lexer

import (
	"regexp"
	"strconv"
)

// An optional sign followed by at least one ASCII digit.
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// IsInteger reports whether s is a signed decimal integer literal
func IsInteger(s string) bool {
	return integerPattern.MatchString(s)
}

// ParseInteger converts a signed decimal literal into an int64. Literals that
// do not fit into 64 bits are rejected.
func ParseInteger(s string) (int64, error) {
	if !IsInteger(s) {
		return 0, &strconv.NumError{Func: "ParseInteger", Num: s, Err: strconv.ErrSyntax}
	}

	return strconv.ParseInt(s, 10, 64)
}
