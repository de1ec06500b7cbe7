package accountapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"auth-client/app/config"
	"auth-client/app/domain"
	"auth-client/app/port"
)

// Client talks to the backend account service over HTTP. The backend is an
// opaque remote collaborator: this client owns the wire contract, nothing
// about the backend's storage or internals.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new account service client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(cfg.AccountAPIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid account API URL: %s", cfg.AccountAPIURL)
	}

	logger.Info("account API client initialized", "base_url", cfg.AccountAPIURL)

	return &Client{
		baseURL: cfg.AccountAPIURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}, nil
}

var _ port.AccountBridge = (*Client)(nil)

type loginRequest struct {
	Token string `json:"token"`
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type accountPayload struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *accountPayload) toDomain() *domain.AccountRecord {
	return &domain.AccountRecord{
		ID:          p.ID,
		SubjectID:   p.SubjectID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// Login resolves the account record for an identity token. A 404 answer is
// the backend saying "no record yet", reported as ErrAccountNotFound so the
// caller can run an implicit signup.
func (c *Client) Login(ctx context.Context, token string) (*domain.AccountRecord, error) {
	resp, err := c.post(ctx, "/v1/accounts/login", loginRequest{Token: token})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return c.decodeAccount(resp)
	case http.StatusNotFound:
		return nil, domain.ErrAccountNotFound
	default:
		return nil, c.unexpectedStatus("login", resp.StatusCode)
	}
}

// Signup materializes an account record with the backend.
func (c *Client) Signup(ctx context.Context, email, password, displayName string) (*domain.AccountRecord, error) {
	resp, err := c.post(ctx, "/v1/accounts", signupRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return c.decodeAccount(resp)
	case http.StatusConflict:
		return nil, domain.ErrAccountConflict
	default:
		return nil, c.unexpectedStatus("signup", resp.StatusCode)
	}
}

// Signout tells the backend to drop its session for the account.
func (c *Client) Signout(ctx context.Context, accountID uuid.UUID) error {
	resp, err := c.post(ctx, fmt.Sprintf("/v1/accounts/%s/signout", accountID), struct{}{})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.unexpectedStatus("signout", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("account API request failed", "path", path, "error", err)
		return nil, domain.NewSessionError(domain.KindNetworkFailure, "account service unreachable", err)
	}
	return resp, nil
}

func (c *Client) decodeAccount(resp *http.Response) (*domain.AccountRecord, error) {
	var payload accountPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewSessionError(domain.KindNetworkFailure, "malformed account service response", err)
	}
	return payload.toDomain(), nil
}

func (c *Client) unexpectedStatus(operation string, statusCode int) error {
	c.logger.Error("account API returned unexpected status",
		"operation", operation,
		"status", statusCode)
	return domain.NewSessionError(domain.KindNetworkFailure,
		fmt.Sprintf("account service %s returned status %d", operation, statusCode), nil)
}
