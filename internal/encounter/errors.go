package encounter

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeContract marks a broken calling contract: an unknown combatant or
	// effect kind, or a player action supplied when no player turn awaits
	// input. Contract errors are programmer errors; callers stop, they never
	// retry.
	CodeContract Code = "CONTRACT_VIOLATION"

	// CodeInvalidAction marks a rejected player action: insufficient mana,
	// an ability on cooldown, a bad target, or an illegal move. Nothing
	// mutates and the same turn stays open, so the caller may submit a
	// different action.
	CodeInvalidAction Code = "INVALID_ACTION"
)

// Error is the engine's error type.
type Error struct {
	Code    Code
	Op      string // operation that rejected, e.g. "advance"
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func contractErr(op, format string, args ...any) *Error {
	return &Error{Code: CodeContract, Op: op, Message: fmt.Sprintf(format, args...)}
}

func invalidErr(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidAction, Op: op, Message: fmt.Sprintf(format, args...)}
}

// GetCode extracts the error code from any error. Returns the empty code
// when the error did not come from the engine.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsContract reports whether err is a broken-contract error.
func IsContract(err error) bool {
	return GetCode(err) == CodeContract
}

// IsInvalidAction reports whether err is a rejected-action error.
func IsInvalidAction(err error) bool {
	return GetCode(err) == CodeInvalidAction
}
