package chain

import "errors"

// Error kinds. Every module error wraps exactly one of them so callers can
// branch on the kind with errors.Is without knowing the module.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrThresholdNotMet   = errors.New("threshold not met")
	ErrOverflow          = errors.New("overflow")
	ErrInvalidArgument   = errors.New("invalid argument")
)

type Error struct {
	Module string
	Name   string
	Kind   error
}

func NewError(module, name string, kind error) *Error {
	return &Error{Module: module, Name: name, Kind: kind}
}

func (e *Error) Error() string {
	return e.Module + ": " + e.Name
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the kind wrapped by err, or nil for errors raised outside
// the modules (storage failures and the like).
func KindOf(err error) error {
	for _, k := range []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrUnauthorized,
		ErrCapacityExceeded,
		ErrInsufficientFunds,
		ErrThresholdNotMet,
		ErrOverflow,
		ErrInvalidArgument,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
