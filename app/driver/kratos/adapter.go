package kratos

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	kratosclient "github.com/ory/kratos-client-go"

	"auth-client/app/domain"
	"auth-client/app/driver/popup"
	"auth-client/app/port"
	"auth-client/app/token"
)

// Adapter implements port.IdentityProvider on top of the Kratos self-service
// API. It holds the current provider session token so SignOut can revoke it;
// everything else is stateless per call.
type Adapter struct {
	client *Client
	broker *popup.Broker
	minter *token.Minter
	logger *slog.Logger

	mu           sync.Mutex
	sessionToken string
}

// NewAdapter creates a new identity provider adapter.
func NewAdapter(client *Client, broker *popup.Broker, minter *token.Minter, logger *slog.Logger) port.IdentityProvider {
	return &Adapter{
		client: client,
		broker: broker,
		minter: minter,
		logger: logger,
	}
}

// VerifyPassword checks a password credential through a native login flow.
func (a *Adapter) VerifyPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		a.logger.Error("kratos login flow creation failed",
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "login_flow_create")
	}

	passwordMethod := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Password:   password,
		Method:     "password",
	}

	success, httpResp, err := a.client.PublicAPI().FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&passwordMethod)).
		Execute()
	if err != nil {
		a.logger.Error("kratos login flow submission failed",
			"flow_id", flow.Id,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "login_flow_submit")
	}

	session := success.GetSession()
	kratosIdentity := session.GetIdentity()
	identity := identityFromKratos(&kratosIdentity)
	a.setSessionToken(success.GetSessionToken())

	a.logger.Info("password verified",
		"flow_id", flow.Id,
		"subject_id", identity.SubjectID,
		"email_verified", identity.EmailVerified)

	return identity, nil
}

// SignUpPassword registers a new password identity through a native
// registration flow. The fresh identity is always unverified.
func (a *Adapter) SignUpPassword(ctx context.Context, email, password, displayName string) (*domain.Identity, error) {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		a.logger.Error("kratos registration flow creation failed",
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "registration_flow_create")
	}

	traits := map[string]interface{}{
		"email": email,
	}
	if displayName != "" {
		traits["name"] = displayName
	}

	passwordMethod := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Traits:   traits,
		Password: password,
		Method:   "password",
	}

	success, httpResp, err := a.client.PublicAPI().FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&passwordMethod)).
		Execute()
	if err != nil {
		a.logger.Error("kratos registration flow submission failed",
			"flow_id", flow.Id,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "registration_flow_submit")
	}

	kratosIdentity := success.GetIdentity()
	identity := identityFromKratos(&kratosIdentity)
	a.setSessionToken(success.GetSessionToken())

	a.logger.Info("identity registered",
		"flow_id", flow.Id,
		"subject_id", identity.SubjectID)

	return identity, nil
}

// FederatedSignIn runs the interactive provider flow. It opens a browser
// login flow, parks it on the popup broker, and blocks until the callback
// fulfills it with a provider session token or the user abandons it.
func (a *Adapter) FederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*domain.Identity, error) {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.CreateBrowserLoginFlow(ctx).Execute()
	if err != nil {
		a.logger.Error("kratos browser login flow creation failed",
			"provider", kind,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "federated_flow_create")
	}

	ui := flow.GetUi()
	authURL, err := providerAuthURL(ui.GetAction(), kind)
	if err != nil {
		return nil, domain.NewSessionError(domain.KindProviderUnavailable, "provider flow has no usable redirect", err)
	}

	pending := a.broker.Open(kind, authURL)
	a.logger.Info("federated sign-in pending",
		"pending_id", pending.ID,
		"provider", kind,
		"flow_id", flow.Id)

	sessionToken, err := a.broker.Await(ctx, pending.ID)
	if err != nil {
		a.logger.Info("federated sign-in did not complete",
			"pending_id", pending.ID,
			"provider", kind,
			"error", err)
		return nil, err
	}

	session, httpResp, err := a.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(sessionToken).
		Execute()
	if err != nil {
		a.logger.Error("kratos session check failed after federated sign-in",
			"provider", kind,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, a.transformKratosError(err, httpResp, "federated_session_check")
	}

	kratosIdentity := session.GetIdentity()
	identity := identityFromKratos(&kratosIdentity)
	a.setSessionToken(sessionToken)

	a.logger.Info("federated sign-in completed",
		"provider", kind,
		"subject_id", identity.SubjectID)

	return identity, nil
}

// SendVerificationEmail dispatches a verification email through a native
// verification flow.
func (a *Adapter) SendVerificationEmail(ctx context.Context, identity *domain.Identity) error {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.CreateNativeVerificationFlow(ctx).Execute()
	if err != nil {
		a.logger.Error("kratos verification flow creation failed",
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return a.transformKratosError(err, httpResp, "verification_flow_create")
	}

	linkMethod := kratosclient.UpdateVerificationFlowWithLinkMethod{
		Email:  identity.Email,
		Method: "link",
	}

	_, httpResp, err = a.client.PublicAPI().FrontendAPI.
		UpdateVerificationFlow(ctx).
		Flow(flow.Id).
		UpdateVerificationFlowBody(kratosclient.UpdateVerificationFlowWithLinkMethodAsUpdateVerificationFlowBody(&linkMethod)).
		Execute()
	if err != nil {
		a.logger.Error("kratos verification flow submission failed",
			"flow_id", flow.Id,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return a.transformKratosError(err, httpResp, "verification_flow_submit")
	}

	a.logger.Info("verification email dispatched", "flow_id", flow.Id)
	return nil
}

// SendPasswordReset dispatches a recovery email through a native recovery
// flow.
func (a *Adapter) SendPasswordReset(ctx context.Context, email string) error {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.CreateNativeRecoveryFlow(ctx).Execute()
	if err != nil {
		a.logger.Error("kratos recovery flow creation failed",
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return a.transformKratosError(err, httpResp, "recovery_flow_create")
	}

	linkMethod := kratosclient.UpdateRecoveryFlowWithLinkMethod{
		Email:  email,
		Method: "link",
	}

	_, httpResp, err = a.client.PublicAPI().FrontendAPI.
		UpdateRecoveryFlow(ctx).
		Flow(flow.Id).
		UpdateRecoveryFlowBody(kratosclient.UpdateRecoveryFlowWithLinkMethodAsUpdateRecoveryFlowBody(&linkMethod)).
		Execute()
	if err != nil {
		a.logger.Error("kratos recovery flow submission failed",
			"flow_id", flow.Id,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return a.transformKratosError(err, httpResp, "recovery_flow_submit")
	}

	a.logger.Info("password reset email dispatched", "flow_id", flow.Id)
	return nil
}

// SignOut revokes the current provider session. Without a held token there
// is nothing provider-side to revoke.
func (a *Adapter) SignOut(ctx context.Context) error {
	sessionToken := a.takeSessionToken()
	if sessionToken == "" {
		return nil
	}

	httpResp, err := a.client.PublicAPI().FrontendAPI.
		PerformNativeLogout(ctx).
		PerformNativeLogoutBody(kratosclient.PerformNativeLogoutBody{SessionToken: sessionToken}).
		Execute()
	if err != nil {
		a.logger.Error("kratos logout failed",
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return a.transformKratosError(err, httpResp, "logout")
	}

	a.logger.Info("provider session revoked")
	return nil
}

// IdentityToken mints a fresh backend token for the identity. Tokens are
// never cached across calls.
func (a *Adapter) IdentityToken(ctx context.Context, identity *domain.Identity) (string, error) {
	return a.minter.Mint(identity)
}

func (a *Adapter) setSessionToken(sessionToken string) {
	a.mu.Lock()
	a.sessionToken = sessionToken
	a.mu.Unlock()
}

func (a *Adapter) takeSessionToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessionToken := a.sessionToken
	a.sessionToken = ""
	return sessionToken
}

// providerAuthURL appends the provider selection to the flow's action URL.
func providerAuthURL(action string, kind domain.ProviderKind) (string, error) {
	if action == "" {
		return "", errUnusableFlow
	}

	parsed, err := url.Parse(action)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("provider", string(kind))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// identityFromKratos maps a Kratos identity to the domain identity. The
// verified flag follows the verifiable address matching the email trait.
func identityFromKratos(kratosIdentity *kratosclient.Identity) *domain.Identity {
	identity := &domain.Identity{
		SubjectID: kratosIdentity.Id,
	}

	if traits, ok := kratosIdentity.GetTraits().(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			identity.Email = email
		}
		switch name := traits["name"].(type) {
		case string:
			identity.DisplayName = name
		case map[string]interface{}:
			first, _ := name["first"].(string)
			last, _ := name["last"].(string)
			identity.DisplayName = joinName(first, last)
		}
	}

	for _, address := range kratosIdentity.GetVerifiableAddresses() {
		if address.GetValue() == identity.Email {
			identity.EmailVerified = address.GetVerified()
			break
		}
	}

	return identity
}

func joinName(first, last string) string {
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
