package spiceerrors

import (
	"errors"
	"fmt"
)

// SourcePosition is a position in the input source.
type SourcePosition struct {
	// LineNumber is the 1-indexed line number in the input source.
	LineNumber int

	// ColumnPosition is the 1-indexed column position in the input source.
	ColumnPosition int
}

// WithSourceError is an error that includes the source text and position
// information.
type WithSourceError struct {
	error

	// SourceCodeString is the input source code string for the error.
	SourceCodeString string

	// LineNumber is the (1-indexed) line number of the error, or 0 if unknown.
	LineNumber uint64

	// ColumnPosition is the (1-indexed) column position of the error, or 0 if
	// unknown.
	ColumnPosition uint64
}

// Error returns the wrapped message prefixed with the position, when known.
func (err *WithSourceError) Error() string {
	if err.LineNumber == 0 {
		return err.error.Error()
	}
	return fmt.Sprintf("line %d, column %d: %s", err.LineNumber, err.ColumnPosition, err.error.Error())
}

// Unwrap returns the inner, wrapped error.
func (err *WithSourceError) Unwrap() error {
	return err.error
}

// Position returns the position of the error in the input source.
func (err *WithSourceError) Position() SourcePosition {
	return SourcePosition{LineNumber: int(err.LineNumber), ColumnPosition: int(err.ColumnPosition)}
}

// NewWithSourceError creates and returns a new WithSourceError.
func NewWithSourceError(err error, sourceCodeString string, oneIndexedLineNumber uint64, oneIndexedColumnPosition uint64) *WithSourceError {
	return &WithSourceError{err, sourceCodeString, oneIndexedLineNumber, oneIndexedColumnPosition}
}

// AsWithSourceError returns the error as an WithSourceError, if applicable.
func AsWithSourceError(err error) (*WithSourceError, bool) {
	var serr *WithSourceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
