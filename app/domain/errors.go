package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a session operation can surface.
type ErrorKind string

const (
	KindInvalidCredential         ErrorKind = "INVALID_CREDENTIAL"
	KindRateLimited               ErrorKind = "RATE_LIMITED"
	KindEmailAlreadyInUse         ErrorKind = "EMAIL_ALREADY_IN_USE"
	KindWeakPassword              ErrorKind = "WEAK_PASSWORD"
	KindUserCancelled             ErrorKind = "USER_CANCELLED"
	KindProviderUnavailable       ErrorKind = "PROVIDER_UNAVAILABLE"
	KindEmailNotVerified          ErrorKind = "EMAIL_NOT_VERIFIED"
	KindUnknownEmail              ErrorKind = "UNKNOWN_EMAIL"
	KindAccountConflict           ErrorKind = "ACCOUNT_CONFLICT"
	KindBackendRegistrationFailed ErrorKind = "BACKEND_REGISTRATION_FAILED"
	KindNoActiveSession           ErrorKind = "NO_ACTIVE_SESSION"
	KindOperationInProgress       ErrorKind = "OPERATION_IN_PROGRESS"
	KindNetworkFailure            ErrorKind = "NETWORK_FAILURE"
)

// SessionError is a classified session failure with an optional cause.
type SessionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// Is matches SessionErrors by kind so sentinel comparisons via errors.Is
// work regardless of message or cause.
func (e *SessionError) Is(target error) bool {
	var se *SessionError
	if errors.As(target, &se) {
		return se.Kind == e.Kind
	}
	return false
}

// NewSessionError creates a classified session error.
func NewSessionError(kind ErrorKind, message string, cause error) *SessionError {
	return &SessionError{Kind: kind, Message: message, Cause: cause}
}

// Sentinel errors, one per taxonomy kind. Drivers wrap causes around these
// kinds; callers compare with errors.Is.
var (
	ErrInvalidCredential         = &SessionError{Kind: KindInvalidCredential, Message: "invalid email or password"}
	ErrRateLimited               = &SessionError{Kind: KindRateLimited, Message: "too many attempts, try again later"}
	ErrEmailAlreadyInUse         = &SessionError{Kind: KindEmailAlreadyInUse, Message: "an account with this email already exists"}
	ErrWeakPassword              = &SessionError{Kind: KindWeakPassword, Message: "password does not meet security requirements"}
	ErrUserCancelled             = &SessionError{Kind: KindUserCancelled, Message: "sign-in was cancelled"}
	ErrProviderUnavailable       = &SessionError{Kind: KindProviderUnavailable, Message: "identity provider is unavailable"}
	ErrEmailNotVerified          = &SessionError{Kind: KindEmailNotVerified, Message: "please verify your email before proceeding"}
	ErrUnknownEmail              = &SessionError{Kind: KindUnknownEmail, Message: "no account matches this email"}
	ErrAccountConflict           = &SessionError{Kind: KindAccountConflict, Message: "an account record already exists for this identity"}
	ErrBackendRegistrationFailed = &SessionError{Kind: KindBackendRegistrationFailed, Message: "account registration with the backend failed"}
	ErrNoActiveSession           = &SessionError{Kind: KindNoActiveSession, Message: "no active session"}
	ErrOperationInProgress       = &SessionError{Kind: KindOperationInProgress, Message: "another session operation is in progress"}
	ErrNetworkFailure            = &SessionError{Kind: KindNetworkFailure, Message: "network failure"}
)

// ErrAccountNotFound signals that the backend holds no account record for an
// identity. It is a domain-level signal on the bridge login path, not a
// member of the surfaced taxonomy: the caller reacts with an implicit signup.
var ErrAccountNotFound = errors.New("account not found")

// ErrorDescriptor is the user-facing shape of a failed operation, held in
// session state until the next operation replaces or clears it.
type ErrorDescriptor struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Describe derives the descriptor for an operation failure. Unclassified
// errors collapse to NetworkFailure so session state never carries raw
// transport detail.
func Describe(err error) *ErrorDescriptor {
	var se *SessionError
	if errors.As(err, &se) {
		return &ErrorDescriptor{Kind: se.Kind, Message: se.Message}
	}
	return &ErrorDescriptor{Kind: KindNetworkFailure, Message: ErrNetworkFailure.Message}
}

// KindOf returns the taxonomy kind of an error, or NetworkFailure for
// unclassified errors.
func KindOf(err error) ErrorKind {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindNetworkFailure
}
