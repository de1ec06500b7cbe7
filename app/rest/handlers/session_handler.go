package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"auth-client/app/config"
	"auth-client/app/domain"
	"auth-client/app/driver/popup"
	"auth-client/app/port"
)

// SessionHandler exposes the session store over HTTP. The federated sign-in
// endpoint long-polls: the request blocks until the popup flow resolves or
// the client disconnects.
type SessionHandler struct {
	session  port.SessionManager
	broker   *popup.Broker
	catalog  *config.ProviderCatalog
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(session port.SessionManager, broker *popup.Broker, catalog *config.ProviderCatalog, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		session:  session,
		broker:   broker,
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=128"`
}

type federatedRequest struct {
	Provider string `json:"provider" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type callbackRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

type stateResponse struct {
	Phase     domain.SessionPhase     `json:"phase"`
	Identity  *domain.Identity        `json:"identity,omitempty"`
	Account   *domain.AccountRecord   `json:"account,omitempty"`
	LastError *domain.ErrorDescriptor `json:"last_error,omitempty"`
	Pending   domain.OperationKind    `json:"pending_operation,omitempty"`
}

func stateResponseFrom(state domain.SessionState) stateResponse {
	return stateResponse{
		Phase:     state.Phase(),
		Identity:  state.Identity,
		Account:   state.Account,
		LastError: state.LastError,
		Pending:   state.Pending,
	}
}

// GetSession returns the current session state.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, stateResponseFrom(h.session.Snapshot()))
}

// ListProviders returns the federated providers this deployment offers.
func (h *SessionHandler) ListProviders(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers": h.catalog.Providers,
	})
}

// Login handles password login.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.session.LoginWithPassword(c.Request().Context(), req.Email, req.Password); err != nil {
		return h.operationFailed(c, "login", err)
	}

	return c.JSON(http.StatusOK, stateResponseFrom(h.session.Snapshot()))
}

// Signup handles password registration. A partial success, provider identity
// without a backend record, still answers with the session state so the
// client sees both the standing identity and the failure descriptor.
func (h *SessionHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.session.SignUpWithPassword(c.Request().Context(), req.Email, req.Password, req.DisplayName); err != nil {
		if domain.KindOf(err) == domain.KindBackendRegistrationFailed {
			return c.JSON(http.StatusBadGateway, stateResponseFrom(h.session.Snapshot()))
		}
		return h.operationFailed(c, "signup", err)
	}

	return c.JSON(http.StatusCreated, stateResponseFrom(h.session.Snapshot()))
}

// FederatedSignIn runs the interactive provider flow. The request blocks
// until the flow resolves; pending flow details are available on the
// pending endpoint for the popup to pick up.
func (h *SessionHandler) FederatedSignIn(c echo.Context) error {
	var req federatedRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if !h.catalog.Contains(req.Provider) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "unsupported federated provider: " + req.Provider,
			Code:  "UNSUPPORTED_PROVIDER",
		})
	}

	kind := domain.ProviderKind(req.Provider)
	if err := h.session.SignInWithFederatedProvider(c.Request().Context(), kind); err != nil {
		return h.operationFailed(c, "federated_sign_in", err)
	}

	return c.JSON(http.StatusOK, stateResponseFrom(h.session.Snapshot()))
}

// PendingFederatedFlows lists flows waiting on the user.
func (h *SessionHandler) PendingFederatedFlows(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"flows": h.broker.Pending(),
	})
}

// FederatedCallback fulfills a pending flow with the provider session token.
func (h *SessionHandler) FederatedCallback(c echo.Context) error {
	flowID, err := uuid.Parse(c.Param("flowId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid flow id", Code: "INVALID_FLOW_ID"})
	}

	var req callbackRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.broker.Fulfill(flowID, req.SessionToken); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no pending flow", Code: "FLOW_NOT_FOUND"})
	}

	return c.NoContent(http.StatusNoContent)
}

// FederatedCancel cancels a pending flow on behalf of the user.
func (h *SessionHandler) FederatedCancel(c echo.Context) error {
	flowID, err := uuid.Parse(c.Param("flowId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid flow id", Code: "INVALID_FLOW_ID"})
	}

	if err := h.broker.Cancel(flowID); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no pending flow", Code: "FLOW_NOT_FOUND"})
	}

	return c.NoContent(http.StatusNoContent)
}

// PasswordReset dispatches a reset email. The answer never reveals whether
// the email exists.
func (h *SessionHandler) PasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.session.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return h.operationFailed(c, "password_reset", err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "reset email dispatched"})
}

// ResendVerification re-dispatches the verification email for the current
// identity.
func (h *SessionHandler) ResendVerification(c echo.Context) error {
	if err := h.session.ResendVerificationEmail(c.Request().Context()); err != nil {
		return h.operationFailed(c, "resend_verification", err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "verification email dispatched"})
}

// Me returns the authenticated principal. Sits behind the access guard, so
// an anonymous request never reaches it.
func (h *SessionHandler) Me(c echo.Context) error {
	state := h.session.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"identity": state.Identity,
		"account":  state.Account,
	})
}

// Logout tears the session down. Always succeeds once it runs.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.session.SignOut(c.Request().Context()); err != nil {
		return h.operationFailed(c, "logout", err)
	}

	return c.JSON(http.StatusOK, stateResponseFrom(h.session.Snapshot()))
}

func (h *SessionHandler) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *SessionHandler) operationFailed(c echo.Context, operation string, err error) error {
	status, body := errorResponseFor(err)
	h.logger.Warn("session operation rejected",
		"operation", operation,
		"code", body.Code,
		"status", status)
	return c.JSON(status, body)
}
