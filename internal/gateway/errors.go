package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is wrapped by callers that could not obtain input text.
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrMalformedLine      = errors.New("malformed line")
	ErrUnrecognizedOption = errors.New("unrecognized option")
)

// MalformedLineError reports a line that fits none of the accepted shapes.
// Line is 1-based and counts every line of the input, skipped ones included.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

type UnrecognizedOptionError struct {
	Line   int
	Option string
}

func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("line %d: unrecognized option %q", e.Line, e.Option)
}

func (e *UnrecognizedOptionError) Is(target error) bool {
	return target == ErrUnrecognizedOption
}
