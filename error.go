package safefn

import (
	"errors"
	"fmt"
)

// Reason classifies an *Error. The values are stable strings and safe to
// compare or log.
type Reason string

const (
	ReasonValidation          Reason = "failure caused by validation"
	ReasonThrown              Reason = "handler threw unknown error"
	ReasonUntypedReturned     Reason = "untyped error returned"
	ReasonOnlySync            Reason = "only accepts synchronous functions"
	ReasonOnlyAsync           Reason = "only accepts async functions"
	ReasonAsyncValidation     Reason = "cannot use asynchronous validation in synchronous mode"
	ReasonInvalidErrorPayload Reason = "invalid error payload"
	ReasonTyped               Reason = "typed error"
)

// Error is the uniform error value reported through Result.
//
// An Error is immutable once constructed. Typed errors (Reason() ==
// ReasonTyped) carry the declared kind name and the validated payload; all
// other reasons describe validation failures, contract violations, or faults
// raised by the handler, with the original fault available via Unwrap.
type Error struct {
	reason  Reason
	message string
	issues  Issues
	cause   error
	kind    string
	payload any
}

// ErrorOption configures an Error during construction via NewError.
type ErrorOption func(*Error)

// WithIssues attaches validation issues. The slice is copied.
func WithIssues(iss Issues) ErrorOption {
	return func(e *Error) {
		if len(iss) > 0 {
			e.issues = append(Issues(nil), iss...)
		}
	}
}

// WithCause sets the underlying cause returned by Unwrap.
func WithCause(cause error) ErrorOption { return func(e *Error) { e.cause = cause } }

// NewError creates an untyped Error. The message defaults to the reason text.
func NewError(reason Reason, message string, opts ...ErrorOption) *Error {
	if message == "" {
		message = string(reason)
	}
	e := &Error{reason: reason, message: message}
	for _, o := range opts {
		o(e)
	}
	return e
}

// typedError builds the Error for a payload accepted by the schema declared
// under kind.
func typedError(kind string, payload any) *Error {
	msg := kind
	if m, ok := payload.(map[string]any); ok {
		if s, ok := m["message"].(string); ok && s != "" {
			msg = s
		}
	}
	return &Error{reason: ReasonTyped, message: msg, kind: kind, payload: clonePayload(payload)}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case len(e.issues) > 0:
		return fmt.Sprintf("%s: %s", e.message, e.issues.Error())
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	default:
		return e.message
	}
}

// Unwrap returns the cause, or the issues when no cause is set, so that
// errors.As(err, &Issues{}) works on validation errors.
func (e *Error) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	if len(e.issues) > 0 {
		return e.issues
	}
	return nil
}

func (e *Error) Reason() Reason  { return e.reason }
func (e *Error) Message() string { return e.message }
func (e *Error) Cause() error    { return e.cause }

// Issues returns a copy of the structured validation issues.
func (e *Error) Issues() Issues {
	if len(e.issues) == 0 {
		return nil
	}
	return append(Issues(nil), e.issues...)
}

// Kind returns the declared error kind for typed errors, "" otherwise.
func (e *Error) Kind() string { return e.kind }

// Payload returns the validated payload of a typed error. Maps are cloned.
func (e *Error) Payload() any { return clonePayload(e.payload) }

// Typed reports whether the error matched a declared error schema.
func (e *Error) Typed() bool { return e != nil && e.reason == ReasonTyped }

// AsError extracts an *Error from err using errors.As.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// realError drops typed nil pointers of the package's own error types, so a
// handler returning a nil *Error through the error interface succeeds.
func realError(err error) error {
	switch e := err.(type) {
	case *Error:
		if e == nil {
			return nil
		}
	case *ValueError:
		if e == nil {
			return nil
		}
	}
	return err
}

// IsReason reports whether err is (or wraps) an *Error with the given reason.
func IsReason(err error, r Reason) bool {
	e, ok := AsError(err)
	return ok && e.reason == r
}

// ValueError carries an arbitrary non-error value through the error channel.
type ValueError struct {
	Value any
}

func (e *ValueError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", e.Value)
}

// Raise turns any value into an error so a handler can return it. Errors
// are returned unchanged; other values are wrapped in *ValueError and
// unwrapped again when matched against declared error schemas.
func Raise(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &ValueError{Value: v}
}

// DefinitionError reports a declaration that cannot be bound to a handler.
// It is the only fault that escapes the declaration API, as a panic.
type DefinitionError struct {
	Err error
}

func (e *DefinitionError) Error() string { return "safefn: invalid declaration: " + e.Err.Error() }
func (e *DefinitionError) Unwrap() error { return e.Err }

var (
	ErrMissingInput   = errors.New("input schema is required")
	ErrMissingOutput  = errors.New("output schema is required")
	ErrMissingHandler = errors.New("handler function is required")
	ErrInvalidKind    = errors.New("invalid error kind")
)

func clonePayload(v any) any {
	if m, ok := v.(map[string]any); ok {
		return cloneMap(m)
	}
	return v
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}
		out[k] = v
	}
	return out
}
