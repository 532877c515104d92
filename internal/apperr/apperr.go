// Package apperr defines the error taxonomy shared by services and
// handlers. Repositories return their own sentinels and wrapped driver
// errors; services translate those into one of the kinds below before
// anything reaches a caller, so raw storage or codec detail never leaks
// out of the core.
package apperr

import "errors"

// Kind classifies a failure for the transport layer.
type Kind int

const (
	// KindUnknown is the zero value; errors outside the taxonomy.
	KindUnknown Kind = iota
	// KindAuthentication covers bad credentials and invalid, expired or
	// revoked tokens. Deliberately generic: callers must not learn which
	// sub-check failed.
	KindAuthentication
	// KindAuthorization means the caller is known but lacks the rights.
	KindAuthorization
	// KindNotFound means the referenced resource or token is absent.
	KindNotFound
	// KindValidation covers business-rule violations such as a duplicate
	// email.
	KindValidation
	// KindStorage is an underlying persistence failure with no business
	// meaning.
	KindStorage
)

// Error carries a kind, a stable caller-facing message and an optional
// wrapped cause. The cause is for logs only and is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match on kind, so tests and handlers can compare
// against a bare kinded error without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }

// Storage wraps an unexpected persistence failure. The message shown to
// callers stays generic; err is retained for logging.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "internal storage error", Err: err}
}

// KindOf extracts the kind from err, or KindUnknown when err is not part
// of the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
