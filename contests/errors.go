// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contests

import "errors"

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
)

// Error carries a kind, a caller-facing message and the underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func invalid(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func storageErr(msg string, err error) error {
	return &Error{Kind: ErrStorage, Msg: msg, Err: err}
}
