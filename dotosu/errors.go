package dotosu

import (
	"errors"
	"fmt"
)

// ErrParse is returned by the low-level field readers when a required
// positional field is absent.
var ErrParse = errors.New("parsing error")

// SyntaxError is returned when a value is present but cannot be decoded,
// or when a line violates the grammar.
type SyntaxError struct {
	Line   int // 1-based source line, 0 when unknown
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Reason)
	}
	return "syntax error: " + e.Reason
}

func syntaxErr(reason string) error {
	return &SyntaxError{Reason: reason}
}

func syntaxErrf(format string, a ...any) error {
	return &SyntaxError{Reason: fmt.Sprintf(format, a...)}
}

// atLine stamps a line number on a SyntaxError that does not carry one yet.
// ErrParse is promoted to a SyntaxError so the caller learns where it happened.
func atLine(err error, line int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		if se.Line == 0 {
			se.Line = line
		}
		return err
	}
	if errors.Is(err, ErrParse) {
		return fmt.Errorf("line %d: %w", line, err)
	}
	return err
}

// BundleError reports a failure at the bundle boundary, such as an audio
// file that the chart names but the bundle does not contain.
type BundleError struct {
	Name string
	Msg  string
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// DifficultyError ties a decode failure to the bundle entry it came from.
type DifficultyError struct {
	Name string
	Err  error
}

func (e *DifficultyError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Name, e.Err)
}

func (e *DifficultyError) Unwrap() error { return e.Err }
