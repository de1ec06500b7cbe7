package kratos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	kratosclient "github.com/ory/kratos-client-go"

	"auth-client/app/domain"
)

var errUnusableFlow = errors.New("flow has no action URL")

// transformKratosError transforms Kratos API errors into the session error
// taxonomy. Classification works message-first: Kratos reports the precise
// reason in the flow UI, the HTTP status alone is too coarse.
func (a *Adapter) transformKratosError(err error, httpResp *http.Response, operation string) error {
	a.logger.Debug("transforming kratos error",
		"error_type", fmt.Sprintf("%T", err),
		"operation", operation,
		"http_status", getHTTPStatus(httpResp))

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewSessionError(domain.KindNetworkFailure, "identity provider unreachable", err)
	}

	var kratosErr *kratosclient.GenericOpenAPIError
	if errors.As(err, &kratosErr) {
		if classified := a.classifyErrorBody(kratosErr.Body(), operation); classified != nil {
			return classified
		}
	}

	if httpResp != nil {
		return a.classifyStatus(httpResp.StatusCode, operation, err)
	}

	return domain.NewSessionError(domain.KindNetworkFailure, fmt.Sprintf("kratos %s failed", operation), err)
}

// classifyErrorBody digs the human-readable reason out of a Kratos error
// payload. Returns nil when nothing in the body classifies.
func (a *Adapter) classifyErrorBody(body []byte, operation string) error {
	var errorResp map[string]interface{}
	if jsonErr := json.Unmarshal(body, &errorResp); jsonErr != nil {
		return a.classifyMessage(string(body), operation)
	}

	if ui, ok := errorResp["ui"].(map[string]interface{}); ok {
		if classified := a.classifyUIMessages(ui, operation); classified != nil {
			return classified
		}
	}

	if message, ok := errorResp["message"].(string); ok {
		if classified := a.classifyMessage(message, operation); classified != nil {
			return classified
		}
	}

	if reason, ok := errorResp["reason"].(string); ok {
		if classified := a.classifyMessage(reason, operation); classified != nil {
			return classified
		}
	}

	if errorObj, ok := errorResp["error"].(map[string]interface{}); ok {
		if message, ok := errorObj["message"].(string); ok {
			if classified := a.classifyMessage(message, operation); classified != nil {
				return classified
			}
		}
	}

	return nil
}

// classifyUIMessages walks flow UI messages, including per-node ones.
func (a *Adapter) classifyUIMessages(ui map[string]interface{}, operation string) error {
	if messages, ok := ui["messages"].([]interface{}); ok {
		if classified := a.classifyMessageList(messages, operation); classified != nil {
			return classified
		}
	}

	if nodes, ok := ui["nodes"].([]interface{}); ok {
		for _, node := range nodes {
			nodeMap, ok := node.(map[string]interface{})
			if !ok {
				continue
			}
			if messages, ok := nodeMap["messages"].([]interface{}); ok {
				if classified := a.classifyMessageList(messages, operation); classified != nil {
					return classified
				}
			}
		}
	}

	return nil
}

func (a *Adapter) classifyMessageList(messages []interface{}, operation string) error {
	for _, msg := range messages {
		msgMap, ok := msg.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := msgMap["text"].(string); ok {
			if classified := a.classifyMessage(text, operation); classified != nil {
				return classified
			}
		}
	}
	return nil
}

// classifyMessage maps a Kratos reason to a taxonomy kind. Returns nil for
// messages that carry no classification signal.
func (a *Adapter) classifyMessage(message, operation string) error {
	messageLower := strings.ToLower(message)

	a.logger.Debug("classifying kratos message",
		"operation", operation,
		"message_snippet", truncateString(message, 100))

	if containsAny(messageLower, []string{"credentials are invalid", "invalid credentials", "wrong password", "no such account"}) {
		return domain.NewSessionError(domain.KindInvalidCredential, domain.ErrInvalidCredential.Message, nil)
	}

	if containsAny(messageLower, []string{"already exists", "already registered", "duplicate credential", "exists already"}) {
		return domain.NewSessionError(domain.KindEmailAlreadyInUse, domain.ErrEmailAlreadyInUse.Message, nil)
	}

	if containsAny(messageLower, []string{"password policy", "password too weak", "too short", "data breaches", "too similar"}) {
		return domain.NewSessionError(domain.KindWeakPassword, domain.ErrWeakPassword.Message, nil)
	}

	if containsAny(messageLower, []string{"unknown email", "address is unknown", "account does not exist"}) {
		return domain.NewSessionError(domain.KindUnknownEmail, domain.ErrUnknownEmail.Message, nil)
	}

	if containsAny(messageLower, []string{"too many", "rate limit", "request has been blocked"}) {
		return domain.NewSessionError(domain.KindRateLimited, domain.ErrRateLimited.Message, nil)
	}

	if containsAny(messageLower, []string{"connection refused", "timeout", "service unavailable"}) {
		return domain.NewSessionError(domain.KindProviderUnavailable, domain.ErrProviderUnavailable.Message, nil)
	}

	return nil
}

// classifyStatus maps bare HTTP status codes to taxonomy kinds. Credential
// failures on login flows surface as 400 without a parseable body only when
// the flow itself rejected the submission.
func (a *Adapter) classifyStatus(statusCode int, operation string, cause error) error {
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		if operation == "login_flow_submit" || operation == "federated_session_check" {
			return domain.NewSessionError(domain.KindInvalidCredential, domain.ErrInvalidCredential.Message, cause)
		}
		return domain.NewSessionError(domain.KindProviderUnavailable, fmt.Sprintf("kratos rejected %s", operation), cause)
	case http.StatusNotFound, http.StatusGone:
		return domain.NewSessionError(domain.KindProviderUnavailable, "authentication flow expired", cause)
	case http.StatusConflict:
		return domain.NewSessionError(domain.KindEmailAlreadyInUse, domain.ErrEmailAlreadyInUse.Message, cause)
	case http.StatusTooManyRequests:
		return domain.NewSessionError(domain.KindRateLimited, domain.ErrRateLimited.Message, cause)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.NewSessionError(domain.KindProviderUnavailable, domain.ErrProviderUnavailable.Message, cause)
	default:
		return domain.NewSessionError(domain.KindNetworkFailure, fmt.Sprintf("HTTP %d during %s", statusCode, operation), cause)
	}
}

// Helper functions

// containsAny checks if the text contains any of the given substrings
func containsAny(text string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(text, substring) {
			return true
		}
	}
	return false
}

// truncateString truncates a string to maxLength with ellipsis
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}

// getHTTPStatus returns HTTP status from response for logging
func getHTTPStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
