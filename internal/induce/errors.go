package induce

import "fmt"

// Error is a typed error returned by this package for configuration
// problems. It carries a message and, optionally, a cause it wraps; it is
// compatible with errors.Is/errors.As via Unwrap. Modeled on the teacher
// server's serr.Error.
type Error struct {
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrInvalidConfiguration is the sentinel cause of every configuration error
// this package returns; callers can check for it with errors.Is.
var ErrInvalidConfiguration = &Error{msg: "invalid configuration"}

// newConfigError returns an error wrapping ErrInvalidConfiguration with a
// specific, human-readable reason.
func newConfigError(reason string) error {
	return &Error{msg: fmt.Sprintf("invalid configuration: %s", reason), cause: ErrInvalidConfiguration}
}
