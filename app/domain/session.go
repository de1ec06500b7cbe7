package domain

// OperationKind names a session-mutating operation for the single-flight
// guard.
type OperationKind string

const (
	OpNone               OperationKind = ""
	OpLogin              OperationKind = "login"
	OpSignup             OperationKind = "signup"
	OpFederatedSignIn    OperationKind = "federated_sign_in"
	OpPasswordReset      OperationKind = "password_reset"
	OpResendVerification OperationKind = "resend_verification"
	OpSignOut            OperationKind = "sign_out"
)

// SessionPhase is the derived lifecycle state of the session.
type SessionPhase string

const (
	PhaseAnonymous               SessionPhase = "anonymous"
	PhaseAuthenticating          SessionPhase = "authenticating"
	PhaseAuthenticatedUnverified SessionPhase = "authenticated_unverified"
	PhaseAuthenticatedVerified   SessionPhase = "authenticated_verified"
)

// SessionState is the aggregate the session store owns. An operation either
// updates Identity and clears LastError, or sets LastError and leaves
// Identity unchanged; password signup is the one documented exception, which
// installs the unverified identity together with the EmailNotVerified
// descriptor.
type SessionState struct {
	Identity  *Identity        `json:"identity,omitempty"`
	Account   *AccountRecord   `json:"account,omitempty"`
	LastError *ErrorDescriptor `json:"last_error,omitempty"`
	Pending   OperationKind    `json:"pending_operation,omitempty"`
}

// Phase derives the lifecycle state. Authenticating wins while an operation
// is in flight; on failure the session re-enters the phase it left.
func (s SessionState) Phase() SessionPhase {
	switch {
	case s.Pending != OpNone:
		return PhaseAuthenticating
	case s.Identity == nil:
		return PhaseAnonymous
	case s.Identity.EmailVerified:
		return PhaseAuthenticatedVerified
	default:
		return PhaseAuthenticatedUnverified
	}
}

// Authenticated reports whether an identity is present. This is the whole of
// the access-guard predicate: verification gates specific operations, not
// navigation.
func (s SessionState) Authenticated() bool {
	return s.Identity != nil
}

// Clone returns a deep copy safe to hand to observers.
func (s SessionState) Clone() SessionState {
	c := s
	c.Identity = s.Identity.Clone()
	c.Account = s.Account.Clone()
	if s.LastError != nil {
		e := *s.LastError
		c.LastError = &e
	}
	return c
}
