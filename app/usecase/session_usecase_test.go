package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"auth-client/app/domain"
	mock_port "auth-client/app/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSessionStore(t *testing.T) (*SessionUseCase, *mock_port.MockIdentityProvider, *mock_port.MockAccountBridge) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mock_port.NewMockIdentityProvider(ctrl)
	bridge := mock_port.NewMockAccountBridge(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionUseCase(provider, bridge, logger), provider, bridge
}

func verifiedIdentity() *domain.Identity {
	return &domain.Identity{
		SubjectID:     "u1",
		Email:         "a@x.com",
		DisplayName:   "Test User",
		EmailVerified: true,
	}
}

// signInVerified drives the store into Authenticated-Verified via the
// password path.
func signInVerified(t *testing.T, uc *SessionUseCase, provider *mock_port.MockIdentityProvider) {
	t.Helper()
	provider.EXPECT().
		VerifyPassword(gomock.Any(), "a@x.com", "correct").
		Return(verifiedIdentity(), nil)
	require.NoError(t, uc.LoginWithPassword(context.Background(), "a@x.com", "correct"))
	require.Equal(t, domain.PhaseAuthenticatedVerified, uc.Snapshot().Phase())
}

func TestSessionUseCase_StartsAnonymous(t *testing.T) {
	uc, _, _ := newSessionStore(t)

	state := uc.Snapshot()
	assert.Equal(t, domain.PhaseAnonymous, state.Phase())
	assert.Nil(t, state.Identity)
	assert.Nil(t, state.LastError)
	assert.Equal(t, domain.OpNone, state.Pending)
}

func TestSessionUseCase_SingleFlight(t *testing.T) {
	uc, provider, _ := newSessionStore(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	provider.EXPECT().
		VerifyPassword(gomock.Any(), "a@x.com", "correct").
		DoAndReturn(func(ctx context.Context, email, password string) (*domain.Identity, error) {
			close(started)
			<-release
			return verifiedIdentity(), nil
		})

	done := make(chan error, 1)
	go func() {
		done <- uc.LoginWithPassword(ctx, "a@x.com", "correct")
	}()
	<-started

	// Every mutating operation must be rejected while the login is in
	// flight, leaving state otherwise unchanged.
	mutators := map[string]func() error{
		"login":               func() error { return uc.LoginWithPassword(ctx, "b@x.com", "pw") },
		"signup":              func() error { return uc.SignUpWithPassword(ctx, "b@x.com", "pw", "B") },
		"federated":           func() error { return uc.SignInWithFederatedProvider(ctx, domain.ProviderGoogle) },
		"password reset":      func() error { return uc.RequestPasswordReset(ctx, "b@x.com") },
		"resend verification": func() error { return uc.ResendVerificationEmail(ctx) },
		"sign out":            func() error { return uc.SignOut(ctx) },
	}
	for name, op := range mutators {
		assert.ErrorIs(t, op(), domain.ErrOperationInProgress, name)
	}

	state := uc.Snapshot()
	assert.Equal(t, domain.PhaseAuthenticating, state.Phase())
	assert.Equal(t, domain.OpLogin, state.Pending)
	assert.Nil(t, state.Identity)
	assert.Nil(t, state.LastError, "rejected operations must not record an error")

	close(release)
	require.NoError(t, <-done)

	state = uc.Snapshot()
	assert.Equal(t, domain.OpNone, state.Pending)
	assert.Equal(t, domain.PhaseAuthenticatedVerified, state.Phase())
}

func TestSessionUseCase_RequestPasswordReset(t *testing.T) {
	tests := []struct {
		name       string
		sendErr    error
		expectErr  bool
		expectKind domain.ErrorKind
	}{
		{
			name: "provider acks",
		},
		{
			name:    "unknown email is swallowed for enumeration resistance",
			sendErr: domain.ErrUnknownEmail,
		},
		{
			name:       "network failure surfaces",
			sendErr:    domain.NewSessionError(domain.KindNetworkFailure, "network failure", assert.AnError),
			expectErr:  true,
			expectKind: domain.KindNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, provider, _ := newSessionStore(t)
			provider.EXPECT().
				SendPasswordReset(gomock.Any(), "nobody@x.com").
				Return(tt.sendErr)

			err := uc.RequestPasswordReset(context.Background(), "nobody@x.com")

			state := uc.Snapshot()
			assert.Nil(t, state.Identity, "reset never mutates identity")
			assert.Equal(t, domain.OpNone, state.Pending)
			if tt.expectErr {
				assert.Error(t, err)
				require.NotNil(t, state.LastError)
				assert.Equal(t, tt.expectKind, state.LastError.Kind)
			} else {
				assert.NoError(t, err)
				assert.Nil(t, state.LastError)
			}
		})
	}
}

func TestSessionUseCase_ResendVerificationEmail(t *testing.T) {
	t.Run("anonymous session", func(t *testing.T) {
		uc, _, _ := newSessionStore(t)

		err := uc.ResendVerificationEmail(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoActiveSession)
		state := uc.Snapshot()
		require.NotNil(t, state.LastError)
		assert.Equal(t, domain.KindNoActiveSession, state.LastError.Kind)
	})

	t.Run("active session", func(t *testing.T) {
		uc, provider, _ := newSessionStore(t)
		signInVerified(t, uc, provider)

		provider.EXPECT().
			SendVerificationEmail(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, uc.ResendVerificationEmail(context.Background()))
		assert.Equal(t, domain.PhaseAuthenticatedVerified, uc.Snapshot().Phase())
	})

	t.Run("dispatch failure keeps identity", func(t *testing.T) {
		uc, provider, _ := newSessionStore(t)
		signInVerified(t, uc, provider)

		provider.EXPECT().
			SendVerificationEmail(gomock.Any(), gomock.Any()).
			Return(domain.NewSessionError(domain.KindProviderUnavailable, "provider down", assert.AnError))

		err := uc.ResendVerificationEmail(context.Background())

		assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
		state := uc.Snapshot()
		assert.NotNil(t, state.Identity, "failure leaves identity unchanged")
		require.NotNil(t, state.LastError)
		assert.Equal(t, domain.KindProviderUnavailable, state.LastError.Kind)
	})
}

func TestSessionUseCase_SignOut(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
	}{
		{name: "clean sign-out"},
		{name: "provider failure still tears down locally", providerErr: domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, provider, _ := newSessionStore(t)
			signInVerified(t, uc, provider)

			provider.EXPECT().SignOut(gomock.Any()).Return(tt.providerErr)

			err := uc.SignOut(context.Background())

			assert.NoError(t, err, "local teardown is unconditional")
			state := uc.Snapshot()
			assert.Equal(t, domain.PhaseAnonymous, state.Phase())
			assert.Nil(t, state.Identity)
			assert.Nil(t, state.LastError)
		})
	}
}

func TestSessionUseCase_SignOut_BridgeFailureIsSwallowed(t *testing.T) {
	uc, provider, bridge := newSessionStore(t)

	// Federated sign-in binds an account record, so sign-out will notify
	// the bridge.
	provider.EXPECT().
		FederatedSignIn(gomock.Any(), domain.ProviderGoogle).
		Return(verifiedIdentity(), nil)
	provider.EXPECT().
		IdentityToken(gomock.Any(), gomock.Any()).
		Return("token-1", nil)
	bridge.EXPECT().
		Login(gomock.Any(), "token-1").
		Return(testAccount(), nil)
	require.NoError(t, uc.SignInWithFederatedProvider(context.Background(), domain.ProviderGoogle))

	provider.EXPECT().SignOut(gomock.Any()).Return(nil)
	bridge.EXPECT().
		Signout(gomock.Any(), testAccount().ID).
		Return(assert.AnError)

	err := uc.SignOut(context.Background())

	assert.NoError(t, err)
	state := uc.Snapshot()
	assert.Equal(t, domain.PhaseAnonymous, state.Phase())
	assert.Nil(t, state.Account)
}
