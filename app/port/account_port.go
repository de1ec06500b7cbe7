package port

//go:generate mockgen -source=account_port.go -destination=../mocks/mock_account_port.go -package=mock_port

import (
	"context"

	"auth-client/app/domain"
	"github.com/google/uuid"
)

// AccountBridge is the request/response contract with the backend account
// service. The backend itself is an opaque remote collaborator.
type AccountBridge interface {
	// Login resolves the account record for a provider-issued identity
	// token. Returns domain.ErrAccountNotFound when the backend has no
	// matching record; that is a signal to proceed with implicit signup,
	// not a failure. Idempotent.
	Login(ctx context.Context, token string) (*domain.AccountRecord, error)

	// Signup materializes an account record. Fails with AccountConflict if
	// the backend already holds one for this identity.
	Signup(ctx context.Context, email, password, displayName string) (*domain.AccountRecord, error)

	// Signout tells the backend to drop its session. Best-effort: the
	// caller must not block local teardown on its outcome.
	Signout(ctx context.Context, accountID uuid.UUID) error
}
