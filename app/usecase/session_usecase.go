package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"auth-client/app/domain"
	"auth-client/app/port"

	"github.com/google/uuid"
)

// SessionUseCase is the process-wide authority over the authenticated
// session. It drives the identity provider and the backend account bridge
// and applies every state transition atomically: no observer ever sees a
// partially-applied update.
//
// Mutating operations are single-flight. The Pending flag is claimed under
// the mutex before any remote call and released unconditionally when the
// operation completes; a second concurrent operation is rejected with
// OperationInProgress without touching the rest of the state. No remote call
// runs while the mutex is held.
type SessionUseCase struct {
	provider port.IdentityProvider
	bridge   port.AccountBridge
	logger   *slog.Logger

	mu    sync.Mutex
	state domain.SessionState
}

// NewSessionUseCase creates a session store starting in the Anonymous state.
func NewSessionUseCase(provider port.IdentityProvider, bridge port.AccountBridge, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		provider: provider,
		bridge:   bridge,
		logger:   logger.With("component", "session_store"),
	}
}

var _ port.SessionManager = (*SessionUseCase)(nil)

// Snapshot returns a consistent copy of the current session state.
func (uc *SessionUseCase) Snapshot() domain.SessionState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Clone()
}

// begin claims the single-flight slot for op.
func (uc *SessionUseCase) begin(op domain.OperationKind) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state.Pending != domain.OpNone {
		return domain.ErrOperationInProgress
	}
	uc.state.Pending = op
	return nil
}

// fail records the failure descriptor, releases the slot, and returns err.
// Identity and account are left untouched: the session re-enters the state
// the operation left from.
func (uc *SessionUseCase) fail(op domain.OperationKind, err error) error {
	uc.mu.Lock()
	uc.state.Pending = domain.OpNone
	uc.state.LastError = domain.Describe(err)
	uc.mu.Unlock()

	uc.logger.Warn("session operation failed",
		"operation", string(op),
		"kind", string(domain.KindOf(err)),
		"error", err)
	return err
}

// apply commits a successful transition and releases the slot.
func (uc *SessionUseCase) apply(mutate func(*domain.SessionState)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Pending = domain.OpNone
	mutate(&uc.state)
}

// LoginWithPassword verifies a password credential against the identity
// provider. Unverified identities are rejected with EmailNotVerified and the
// session stays anonymous. The backend bridge is not consulted: the password
// flow trusts the provider's verification alone.
func (uc *SessionUseCase) LoginWithPassword(ctx context.Context, email, password string) error {
	if err := uc.begin(domain.OpLogin); err != nil {
		return err
	}

	identity, err := uc.provider.VerifyPassword(ctx, email, password)
	if err != nil {
		return uc.fail(domain.OpLogin, err)
	}

	if !identity.EmailVerified {
		return uc.fail(domain.OpLogin, domain.ErrEmailNotVerified)
	}

	uc.apply(func(s *domain.SessionState) {
		s.Identity = identity
		s.LastError = nil
	})
	uc.logger.Info("password login succeeded", "subject_id", identity.SubjectID)
	return nil
}

// SignUpWithPassword registers a password identity, dispatches the mandatory
// verification email exactly once, and materializes the backend account
// record. The new identity is installed unverified together with the
// EmailNotVerified descriptor: signup never yields a verified session
// directly. A bridge failure is surfaced as BackendRegistrationFailed while
// the provider-side identity stands (documented partial success).
func (uc *SessionUseCase) SignUpWithPassword(ctx context.Context, email, password, displayName string) error {
	if err := uc.begin(domain.OpSignup); err != nil {
		return err
	}

	identity, err := uc.provider.SignUpPassword(ctx, email, password, displayName)
	if err != nil {
		return uc.fail(domain.OpSignup, err)
	}

	if err := uc.provider.SendVerificationEmail(ctx, identity); err != nil {
		return uc.fail(domain.OpSignup, err)
	}

	account, bridgeErr := uc.bridge.Signup(ctx, email, password, displayName)
	if bridgeErr != nil {
		bridgeErr = domain.NewSessionError(domain.KindBackendRegistrationFailed,
			domain.ErrBackendRegistrationFailed.Message, bridgeErr)
	}

	uc.apply(func(s *domain.SessionState) {
		s.Identity = identity
		s.Account = account
		if bridgeErr != nil {
			s.LastError = domain.Describe(bridgeErr)
		} else {
			s.LastError = domain.Describe(domain.ErrEmailNotVerified)
		}
	})

	if bridgeErr != nil {
		uc.logger.Warn("backend registration failed, provider identity stands",
			"subject_id", identity.SubjectID, "error", bridgeErr)
		return bridgeErr
	}

	uc.logger.Info("password signup succeeded, verification pending",
		"subject_id", identity.SubjectID)
	return nil
}

// SignInWithFederatedProvider runs the interactive federated flow, then
// reconciles the provider identity against the backend: a NotFound answer
// triggers exactly one implicit signup, since federated identities never
// hold a local password. Federated identities bypass the EmailNotVerified
// gate.
func (uc *SessionUseCase) SignInWithFederatedProvider(ctx context.Context, kind domain.ProviderKind) error {
	if err := uc.begin(domain.OpFederatedSignIn); err != nil {
		return err
	}

	identity, err := uc.provider.FederatedSignIn(ctx, kind)
	if err != nil {
		return uc.fail(domain.OpFederatedSignIn, err)
	}

	token, err := uc.provider.IdentityToken(ctx, identity)
	if err != nil {
		return uc.fail(domain.OpFederatedSignIn, err)
	}

	account, err := uc.bridge.Login(ctx, token)
	if errors.Is(err, domain.ErrAccountNotFound) {
		uc.logger.Info("new federated identity, creating backend account",
			"provider", string(kind), "subject_id", identity.SubjectID)
		account, err = uc.bridge.Signup(ctx, identity.Email, "", identity.DisplayName)
	}
	if err != nil {
		return uc.fail(domain.OpFederatedSignIn, err)
	}

	uc.apply(func(s *domain.SessionState) {
		s.Identity = identity
		s.Account = account
		s.LastError = nil
	})
	uc.logger.Info("federated sign-in succeeded",
		"provider", string(kind), "subject_id", identity.SubjectID)
	return nil
}

// RequestPasswordReset dispatches a reset email. It never mutates identity
// and never reveals whether the email exists: an UnknownEmail answer from
// the provider is treated as success.
func (uc *SessionUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	if err := uc.begin(domain.OpPasswordReset); err != nil {
		return err
	}

	if err := uc.provider.SendPasswordReset(ctx, email); err != nil && !errors.Is(err, domain.ErrUnknownEmail) {
		return uc.fail(domain.OpPasswordReset, err)
	}

	uc.apply(func(*domain.SessionState) {})
	uc.logger.Info("password reset dispatched")
	return nil
}

// ResendVerificationEmail re-dispatches the verification email for the
// current identity. Fails with NoActiveSession when the session is
// anonymous.
func (uc *SessionUseCase) ResendVerificationEmail(ctx context.Context) error {
	if err := uc.begin(domain.OpResendVerification); err != nil {
		return err
	}

	uc.mu.Lock()
	identity := uc.state.Identity.Clone()
	uc.mu.Unlock()

	if identity == nil {
		return uc.fail(domain.OpResendVerification, domain.ErrNoActiveSession)
	}

	if err := uc.provider.SendVerificationEmail(ctx, identity); err != nil {
		return uc.fail(domain.OpResendVerification, err)
	}

	uc.apply(func(*domain.SessionState) {})
	uc.logger.Info("verification email resent", "subject_id", identity.SubjectID)
	return nil
}

// SignOut revokes the provider session and best-effort notifies the backend,
// then tears the local session down unconditionally. The security property
// owned here is "no stale local credential": remote failures are logged,
// never surfaced, and never keep the user signed in locally.
func (uc *SessionUseCase) SignOut(ctx context.Context) error {
	if err := uc.begin(domain.OpSignOut); err != nil {
		return err
	}

	uc.mu.Lock()
	var accountID uuid.UUID
	hasAccount := uc.state.Account != nil
	if hasAccount {
		accountID = uc.state.Account.ID
	}
	uc.mu.Unlock()

	if err := uc.provider.SignOut(ctx); err != nil {
		uc.logger.Warn("provider sign-out failed, tearing down local session anyway", "error", err)
	}

	if hasAccount {
		if err := uc.bridge.Signout(ctx, accountID); err != nil {
			uc.logger.Warn("backend signout failed, tearing down local session anyway",
				"account_id", accountID, "error", err)
		}
	}

	uc.apply(func(s *domain.SessionState) {
		s.Identity = nil
		s.Account = nil
		s.LastError = nil
	})
	uc.logger.Info("signed out")
	return nil
}
