package handlers

import (
	"net/http"

	"auth-client/app/domain"
)

// ErrorResponse is the JSON shape for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// httpStatusFor maps session error kinds to HTTP statuses. OperationInProgress
// is a concurrency rejection, not a failure of the session, hence 409.
func httpStatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidCredential, domain.KindNoActiveSession:
		return http.StatusUnauthorized
	case domain.KindEmailNotVerified:
		return http.StatusForbidden
	case domain.KindUnknownEmail:
		return http.StatusNotFound
	case domain.KindEmailAlreadyInUse, domain.KindAccountConflict, domain.KindOperationInProgress:
		return http.StatusConflict
	case domain.KindWeakPassword, domain.KindUserCancelled:
		return http.StatusUnprocessableEntity
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindProviderUnavailable, domain.KindBackendRegistrationFailed, domain.KindNetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorResponseFor builds the wire response for an operation failure.
func errorResponseFor(err error) (int, ErrorResponse) {
	descriptor := domain.Describe(err)
	return httpStatusFor(descriptor.Kind), ErrorResponse{
		Error: descriptor.Message,
		Code:  string(descriptor.Kind),
	}
}
