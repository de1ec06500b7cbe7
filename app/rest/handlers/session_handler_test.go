package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-client/app/config"
	"auth-client/app/domain"
	"auth-client/app/driver/popup"
	mock_port "auth-client/app/mocks"
)

func newTestHandler(t *testing.T) (*SessionHandler, *mock_port.MockSessionManager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	session := mock_port.NewMockSessionManager(ctrl)

	catalog, err := config.LoadProviderCatalog("no-such-file.yaml")
	require.NoError(t, err)

	handler := NewSessionHandler(session, popup.NewBroker(), catalog,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return handler, session
}

func doJSON(handler echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler(c)
}

func TestSessionHandler_GetSession(t *testing.T) {
	handler, session := newTestHandler(t)

	session.EXPECT().Snapshot().Return(domain.SessionState{
		Identity: &domain.Identity{SubjectID: "subject-1", Email: "a@x.com", EmailVerified: true},
	})

	rec, err := doJSON(handler.GetSession, http.MethodGet, "/v1/session", "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.PhaseAuthenticatedVerified, resp.Phase)
	assert.Equal(t, "a@x.com", resp.Identity.Email)
}

func TestSessionHandler_Login(t *testing.T) {
	t.Run("success returns the new state", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			LoginWithPassword(gomock.Any(), "a@x.com", "secret-pass").
			Return(nil)
		session.EXPECT().Snapshot().Return(domain.SessionState{
			Identity: &domain.Identity{SubjectID: "subject-1", Email: "a@x.com", EmailVerified: true},
		})

		rec, err := doJSON(handler.Login, http.MethodPost, "/v1/session/login",
			`{"email":"a@x.com","password":"secret-pass"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid credential maps to 401", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			LoginWithPassword(gomock.Any(), "a@x.com", "wrong").
			Return(domain.ErrInvalidCredential)

		rec, err := doJSON(handler.Login, http.MethodPost, "/v1/session/login",
			`{"email":"a@x.com","password":"wrong"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.KindInvalidCredential), resp.Code)
	})

	t.Run("concurrent operation maps to 409", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			LoginWithPassword(gomock.Any(), "a@x.com", "secret-pass").
			Return(domain.ErrOperationInProgress)

		rec, err := doJSON(handler.Login, http.MethodPost, "/v1/session/login",
			`{"email":"a@x.com","password":"secret-pass"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing email fails validation", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		_, err := doJSON(handler.Login, http.MethodPost, "/v1/session/login",
			`{"password":"secret-pass"}`)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestSessionHandler_Signup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			SignUpWithPassword(gomock.Any(), "a@x.com", "secret-pass", "Test User").
			Return(nil)
		session.EXPECT().Snapshot().Return(domain.SessionState{
			Identity:  &domain.Identity{SubjectID: "subject-1", Email: "a@x.com"},
			LastError: domain.Describe(domain.ErrEmailNotVerified),
		})

		rec, err := doJSON(handler.Signup, http.MethodPost, "/v1/session/signup",
			`{"email":"a@x.com","password":"secret-pass","display_name":"Test User"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp stateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.PhaseAuthenticatedUnverified, resp.Phase)
		assert.Equal(t, domain.KindEmailNotVerified, resp.LastError.Kind)
	})

	t.Run("backend registration failure still answers with state", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			SignUpWithPassword(gomock.Any(), "a@x.com", "secret-pass", "").
			Return(domain.ErrBackendRegistrationFailed)
		session.EXPECT().Snapshot().Return(domain.SessionState{
			Identity:  &domain.Identity{SubjectID: "subject-1", Email: "a@x.com"},
			LastError: domain.Describe(domain.ErrBackendRegistrationFailed),
		})

		rec, err := doJSON(handler.Signup, http.MethodPost, "/v1/session/signup",
			`{"email":"a@x.com","password":"secret-pass"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var resp stateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotNil(t, resp.Identity, "provider identity stands on partial success")
	})

	t.Run("weak password maps to 422", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			SignUpWithPassword(gomock.Any(), "a@x.com", "weak-but-long", "").
			Return(domain.ErrWeakPassword)

		rec, err := doJSON(handler.Signup, http.MethodPost, "/v1/session/signup",
			`{"email":"a@x.com","password":"weak-but-long"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestSessionHandler_FederatedSignIn(t *testing.T) {
	t.Run("unsupported provider", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		rec, err := doJSON(handler.FederatedSignIn, http.MethodPost, "/v1/session/federated",
			`{"provider":"github"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("user cancelled", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			SignInWithFederatedProvider(gomock.Any(), domain.ProviderGoogle).
			Return(domain.ErrUserCancelled)

		rec, err := doJSON(handler.FederatedSignIn, http.MethodPost, "/v1/session/federated",
			`{"provider":"google"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().
			SignInWithFederatedProvider(gomock.Any(), domain.ProviderFacebook).
			Return(nil)
		session.EXPECT().Snapshot().Return(domain.SessionState{
			Identity: &domain.Identity{SubjectID: "subject-1", Email: "a@x.com", EmailVerified: true},
		})

		rec, err := doJSON(handler.FederatedSignIn, http.MethodPost, "/v1/session/federated",
			`{"provider":"facebook"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSessionHandler_FederatedCallback(t *testing.T) {
	handler, _ := newTestHandler(t)
	flow := handler.broker.Open(domain.ProviderGoogle, "https://accounts.example/auth")

	// consume the broker resolution so Fulfill has a waiting flow
	done := make(chan struct{})
	go func() {
		defer close(done)
		token, err := handler.broker.Await(t.Context(), flow.ID)
		assert.NoError(t, err)
		assert.Equal(t, "session-token-1", token)
	}()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_token":"session-token-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("flowId")
	c.SetParamValues(flow.ID.String())

	require.NoError(t, handler.FederatedCallback(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	<-done

	t.Run("unknown flow", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_token":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("flowId")
		c.SetParamValues("3f2c8f0e-52f4-4f43-a8c1-111111111111")

		require.NoError(t, handler.FederatedCallback(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed flow id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_token":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("flowId")
		c.SetParamValues("not-a-uuid")

		require.NoError(t, handler.FederatedCallback(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionHandler_PasswordReset(t *testing.T) {
	handler, session := newTestHandler(t)

	session.EXPECT().
		RequestPasswordReset(gomock.Any(), "a@x.com").
		Return(nil)

	rec, err := doJSON(handler.PasswordReset, http.MethodPost, "/v1/session/password-reset",
		`{"email":"a@x.com"}`)

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSessionHandler_ResendVerification(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().ResendVerificationEmail(gomock.Any()).Return(nil)

		rec, err := doJSON(handler.ResendVerification, http.MethodPost, "/v1/session/verification/resend", "")

		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("no active session", func(t *testing.T) {
		handler, session := newTestHandler(t)

		session.EXPECT().ResendVerificationEmail(gomock.Any()).Return(domain.ErrNoActiveSession)

		rec, err := doJSON(handler.ResendVerification, http.MethodPost, "/v1/session/verification/resend", "")

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSessionHandler_Logout(t *testing.T) {
	handler, session := newTestHandler(t)

	session.EXPECT().SignOut(gomock.Any()).Return(nil)
	session.EXPECT().Snapshot().Return(domain.SessionState{})

	rec, err := doJSON(handler.Logout, http.MethodPost, "/v1/session/logout", "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.PhaseAnonymous, resp.Phase)
	assert.Nil(t, resp.Identity)
}
