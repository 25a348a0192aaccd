package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("not found")
	ErrStateConflict           = errors.New("state conflict")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// Error carries a client-facing message and unwraps to one of the kind sentinels.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrStateConflict, Msg: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a transport or timeout failure from a downstream service.
func Unavailable(service string, err error) error {
	return &Error{Kind: ErrCollaboratorUnavailable, Msg: service + " unavailable", Err: err}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrStateConflict) }
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrCollaboratorUnavailable)
}
