package port

//go:generate mockgen -source=provider_port.go -destination=../mocks/mock_provider_port.go -package=mock_port

import (
	"context"

	"auth-client/app/domain"
)

// IdentityProvider is the contract with the external identity provider. Every
// call is blocking; FederatedSignIn additionally suspends until the
// interactive popup flow resolves or the context is cancelled.
type IdentityProvider interface {
	// VerifyPassword checks a password credential and returns the asserted
	// identity. Fails with InvalidCredential or RateLimited.
	VerifyPassword(ctx context.Context, email, password string) (*domain.Identity, error)

	// SignUpPassword registers a new password identity. Fails with
	// EmailAlreadyInUse or WeakPassword.
	SignUpPassword(ctx context.Context, email, password, displayName string) (*domain.Identity, error)

	// FederatedSignIn runs the interactive provider flow. Fails with
	// UserCancelled or ProviderUnavailable.
	FederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*domain.Identity, error)

	// SendVerificationEmail dispatches a verification email for the identity.
	SendVerificationEmail(ctx context.Context, identity *domain.Identity) error

	// SendPasswordReset dispatches a password-reset email. May fail with
	// UnknownEmail; the store swallows that for enumeration resistance.
	SendPasswordReset(ctx context.Context, email string) error

	// SignOut revokes the provider-side session.
	SignOut(ctx context.Context) error

	// IdentityToken mints a fresh token authenticating the identity against
	// the backend account bridge. Minted per call, never cached across
	// sessions.
	IdentityToken(ctx context.Context, identity *domain.Identity) (string, error)
}
