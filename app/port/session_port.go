package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go -package=mock_port

import (
	"context"

	"auth-client/app/domain"
)

// SessionManager is the session store surface the rest of the application
// consults. Mutating operations are single-flight per session: a second
// concurrent call is rejected with OperationInProgress.
type SessionManager interface {
	LoginWithPassword(ctx context.Context, email, password string) error
	SignUpWithPassword(ctx context.Context, email, password, displayName string) error
	SignInWithFederatedProvider(ctx context.Context, kind domain.ProviderKind) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResendVerificationEmail(ctx context.Context) error
	SignOut(ctx context.Context) error

	// Snapshot returns a consistent copy of the current session state.
	Snapshot() domain.SessionState
}
