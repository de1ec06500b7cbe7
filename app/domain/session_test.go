package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_Phase(t *testing.T) {
	tests := []struct {
		name  string
		state SessionState
		want  SessionPhase
	}{
		{
			name:  "empty state is anonymous",
			state: SessionState{},
			want:  PhaseAnonymous,
		},
		{
			name:  "pending operation is authenticating",
			state: SessionState{Pending: OpLogin},
			want:  PhaseAuthenticating,
		},
		{
			name: "pending wins over identity",
			state: SessionState{
				Identity: &Identity{SubjectID: "u1", EmailVerified: true},
				Pending:  OpSignOut,
			},
			want: PhaseAuthenticating,
		},
		{
			name:  "unverified identity",
			state: SessionState{Identity: &Identity{SubjectID: "u1"}},
			want:  PhaseAuthenticatedUnverified,
		},
		{
			name:  "verified identity",
			state: SessionState{Identity: &Identity{SubjectID: "u1", EmailVerified: true}},
			want:  PhaseAuthenticatedVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Phase())
		})
	}
}

func TestSessionState_Clone(t *testing.T) {
	state := SessionState{
		Identity:  &Identity{SubjectID: "u1", Email: "a@x.com"},
		LastError: &ErrorDescriptor{Kind: KindEmailNotVerified, Message: "verify first"},
	}

	clone := state.Clone()
	clone.Identity.Email = "b@x.com"
	clone.LastError.Kind = KindNetworkFailure

	assert.Equal(t, "a@x.com", state.Identity.Email)
	assert.Equal(t, KindEmailNotVerified, state.LastError.Kind)
}

func TestSessionError_Is(t *testing.T) {
	wrapped := NewSessionError(KindInvalidCredential, "bad login", errors.New("kratos: 400"))

	assert.True(t, errors.Is(wrapped, ErrInvalidCredential))
	assert.False(t, errors.Is(wrapped, ErrRateLimited))
	assert.False(t, errors.Is(wrapped, ErrAccountNotFound))
}

func TestDescribe(t *testing.T) {
	desc := Describe(NewSessionError(KindWeakPassword, "too short", nil))
	assert.Equal(t, KindWeakPassword, desc.Kind)
	assert.Equal(t, "too short", desc.Message)

	desc = Describe(errors.New("connection refused"))
	assert.Equal(t, KindNetworkFailure, desc.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUserCancelled, KindOf(ErrUserCancelled))
	assert.Equal(t, KindNetworkFailure, KindOf(errors.New("dial tcp: timeout")))
}
