package domain

import "errors"

// ErrorKind is the closed set of failure categories surfaced to callers.
// Handlers branch on the kind, never on message text.
type ErrorKind int

const (
	// KindValidation covers missing or malformed input, rejected before
	// touching storage. The message is safe to surface verbatim.
	KindValidation ErrorKind = iota + 1
	// KindAuthenticationFailed covers bad credentials and inactive
	// accounts, always with a generalized message.
	KindAuthenticationFailed
	// KindTokenInvalidOrExpired covers the reset flow. No distinction is
	// made between a wrong token and an expired one.
	KindTokenInvalidOrExpired
	// KindPersistence covers storage failures, reported opaquely.
	KindPersistence
)

// Error carries an ErrorKind alongside a client-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewValidationError builds a validation failure with a caller-visible message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf extracts the ErrorKind from err, or 0 if err is not a domain Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Authentication and reset errors
var (
	ErrLoginFailed       = &Error{Kind: KindAuthenticationFailed, Message: "login failed"}
	ErrResetTokenInvalid = &Error{Kind: KindTokenInvalidOrExpired, Message: "invalid or expired reset token"}
)

// Storage errors, consumed by services and never surfaced directly
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)
