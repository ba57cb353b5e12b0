package admission

import (
	"errors"
	"net/http"
)

// Error kinds produced by the admission workflow, in the order the checks
// run. Each maps to exactly one HTTP status so precedence stays testable.
var (
	ErrMissingSession      = errors.New("session_id is required")
	ErrMissingEmail        = errors.New("email is required")
	ErrMissingFile         = errors.New("resume file is required")
	ErrUnsupportedFileType = errors.New("only PDF files are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
	ErrConfiguration       = errors.New("service misconfigured")
	ErrPaymentLookupFailed = errors.New("payment verification failed")
	ErrPaymentNotVerified  = errors.New("payment not verified")
	ErrStorageWriteFailed  = errors.New("upload failed")

	// ErrCapacityExceeded is raised by the checkout gate, not by Admit.
	ErrCapacityExceeded = errors.New("submission limit reached")
)

// HTTPStatus maps a workflow error to its response status. Unknown errors are
// treated as unexpected and answered with 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingSession),
		errors.Is(err, ErrMissingEmail),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrUnsupportedFileType),
		errors.Is(err, ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrPaymentNotVerified),
		errors.Is(err, ErrCapacityExceeded):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the client-facing text for a workflow error. Server-side
// detail is only exposed for storage failures, matching the store's message
// passthrough; everything else gets a fixed phrase.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingSession):
		return "Missing session_id. Please complete payment first."
	case errors.Is(err, ErrMissingEmail):
		return "Email address is required."
	case errors.Is(err, ErrMissingFile):
		return "Resume file is required."
	case errors.Is(err, ErrUnsupportedFileType):
		return "Only PDF files are allowed."
	case errors.Is(err, ErrFileTooLarge):
		return "File size exceeds the 10MB limit."
	case errors.Is(err, ErrPaymentNotVerified):
		return "Payment not verified."
	case errors.Is(err, ErrCapacityExceeded):
		return "The beta is full. Submissions are closed for now."
	case errors.Is(err, ErrPaymentLookupFailed):
		return "Could not verify payment. Please try again later."
	case errors.Is(err, ErrConfiguration):
		return "Server configuration error."
	case errors.Is(err, ErrStorageWriteFailed):
		return err.Error()
	default:
		return "An unexpected error occurred. Please try again later."
	}
}
