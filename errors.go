package json2hcl

import (
	"bytes"
	"fmt"
)

// ParseError is returned when the input is not a single valid json document.
type ParseError struct {
	// Offset is the byte offset of the failure in the input.
	Offset int
	// Line and Column are 1-based. Column counts bytes.
	Line   int
	Column int
	Reason string
}

func newParseError(data []byte, offset int, reason string) *ParseError {
	line := bytes.Count(data[:offset], []byte("\n")) + 1
	col := offset - bytes.LastIndexByte(data[:offset], '\n')
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: col,
		Reason: reason,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// IOError is returned when reading the input or writing the output fails.
type IOError struct {
	// Op is one of "read", "write" or "flush".
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors.Cause see through the error.
func (e *IOError) Cause() error { return e.Err }
