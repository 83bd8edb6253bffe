package apperror

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies a failure so callers can tell an invalid request from a
// broken collaborator without parsing messages.
type Kind string

const (
	InvalidInput            Kind = "invalid_input"
	Misconfigured           Kind = "misconfigured"
	ProviderUnavailable     Kind = "provider_unavailable"
	ProviderResponseInvalid Kind = "provider_response_invalid"
	StorageRejected         Kind = "storage_rejected"
	Unavailable             Kind = "store_unavailable"
	ValidationFailed        Kind = "store_validation_failed"
	Unknown                 Kind = "unknown"
)

const fallbackMessage = "Something went wrong."

// Error is the normalized (status, message) pair every component failure
// is converted to before crossing a package boundary.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, status int, message string) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = fallbackMessage
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// Translate flattens any error into an HTTP status and a human-readable
// message. Already-normalized errors pass through unchanged; storage
// provider errors keep their embedded status and message; anything else
// becomes a 500.
func Translate(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		status := gErr.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := gErr.Message
		if message == "" {
			message = fallbackMessage
		}
		return status, message
	}

	if err != nil {
		return http.StatusInternalServerError, err.Error()
	}

	return http.StatusInternalServerError, fallbackMessage
}
