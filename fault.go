package behaviortreex

import (
	"errors"
	"fmt"
)

// Contract violations. These indicate a malformed tree rather than a runtime
// condition and are raised with Fault, never returned.
var (
	ErrNoChildren    = errors.New("composite has no children")
	ErrNotRunning    = errors.New("behavior is not running")
	ErrChildIndex    = errors.New("child index out of range")
	ErrAlreadyActive = errors.New("composite already ticked")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidCount  = errors.New("invalid repeat count")
	ErrNilBehavior   = errors.New("nil behavior")
)

// Fault halts the current tick by panicking with an error wrapping err.
// Callers recovering the panic can match the cause with errors.Is.
func Fault(err error, format string, args ...any) {
	panic(fmt.Errorf("behaviortreex: %s: %w", fmt.Sprintf(format, args...), err))
}
